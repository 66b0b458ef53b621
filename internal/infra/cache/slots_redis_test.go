package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
)

func newCache(t *testing.T) (*RedisSlotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisSlotCache(rdb, 30*time.Second, zerolog.New(io.Discard)), mr
}

func TestSlotCacheRoundTrip(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	_, version, ok := c.Get(ctx, 1, "2026-10-19", 30)
	require.False(t, ok)

	slots := []domain.Slot{{Time: "09:00", Available: true}, {Time: "09:15", Available: false}}
	c.Set(ctx, 1, "2026-10-19", 30, version, slots)

	got, _, ok := c.Get(ctx, 1, "2026-10-19", 30)
	require.True(t, ok)
	assert.Equal(t, slots, got)

	_, _, ok = c.Get(ctx, 1, "2026-10-19", 45)
	assert.False(t, ok, "durations are cached separately")
}

func TestSlotCacheInvalidateDropsStaleWrites(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	_, before, _ := c.Get(ctx, 1, "2026-10-19", 30)

	c.Invalidate(ctx, 1, "2026-10-19")

	// A reader that looked up before the commit writes back late.
	c.Set(ctx, 1, "2026-10-19", 30, before, []domain.Slot{{Time: "09:00", Available: true}})

	_, after, ok := c.Get(ctx, 1, "2026-10-19", 30)
	assert.False(t, ok)
	assert.Greater(t, after, before)

	// Other barbers keep their entries.
	c.Set(ctx, 2, "2026-10-19", 30, 0, []domain.Slot{})
	_, _, ok = c.Get(ctx, 2, "2026-10-19", 30)
	assert.True(t, ok)
}

func TestSlotCacheEntriesExpire(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	c.Set(ctx, 1, "2026-10-19", 30, 0, []domain.Slot{{Time: "09:00", Available: true}})
	mr.FastForward(31 * time.Second)

	_, _, ok := c.Get(ctx, 1, "2026-10-19", 30)
	assert.False(t, ok)
}

func TestSlotCacheUnreachableIsMiss(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	_, _, ok := c.Get(context.Background(), 1, "2026-10-19", 30)
	assert.False(t, ok)
	c.Invalidate(context.Background(), 1, "2026-10-19")
}
