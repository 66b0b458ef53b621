// Package cache keeps recently generated slot lists in Redis.
//
// Entries are namespaced by a per-(barber, date) version counter. Invalidate
// bumps the counter, so lists computed before a commit can never be served
// after it, even if they are written back late.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
)

const versionTTL = 48 * time.Hour

type RedisSlotCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewRedisSlotCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisSlotCache {
	return &RedisSlotCache{rdb: rdb, ttl: ttl, log: log}
}

func versionKey(barberID uint, date string) string {
	return fmt.Sprintf("slots:v:%d:%s", barberID, date)
}

func entryKey(barberID uint, date string, version int64, duration int) string {
	return fmt.Sprintf("slots:%d:%s:%d:%d", barberID, date, version, duration)
}

// Get returns the cached list and the version it was looked up under. The
// version must be passed back to Set.
func (c *RedisSlotCache) Get(
	ctx context.Context,
	barberID uint,
	date string,
	duration int,
) ([]domain.Slot, int64, bool) {

	version, err := c.rdb.Get(ctx, versionKey(barberID, date)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Msg("slot cache: read version")
		return nil, 0, false
	}

	raw, err := c.rdb.Get(ctx, entryKey(barberID, date, version, duration)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("slot cache: read entry")
		}
		return nil, version, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn().Err(err).Msg("slot cache: decode entry")
		return nil, version, false
	}
	return slots, version, true
}

func (c *RedisSlotCache) Set(
	ctx context.Context,
	barberID uint,
	date string,
	duration int,
	version int64,
	slots []domain.Slot,
) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, entryKey(barberID, date, version, duration), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("slot cache: write entry")
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, barberID uint, date string) {
	key := versionKey(barberID, date)

	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, versionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).
			Uint("barber_id", barberID).
			Str("date", date).
			Msg("slot cache: invalidate")
	}
}
