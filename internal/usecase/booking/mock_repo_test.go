package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type mockRepo struct {
	mock.Mock
}

var _ domain.Repository = (*mockRepo)(nil)

func (m *mockRepo) GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	args := m.Called(ctx, barberID, weekday)
	wh, _ := args.Get(0).(*models.WorkingHours)
	return wh, args.Error(1)
}

func (m *mockRepo) ListOverlappingTimeOff(ctx context.Context, barberID uint, date string) ([]models.TimeOff, error) {
	args := m.Called(ctx, barberID, date)
	rows, _ := args.Get(0).([]models.TimeOff)
	return rows, args.Error(1)
}

func (m *mockRepo) ListActiveIntervals(ctx context.Context, barberID uint, date string) ([]domain.BookedInterval, error) {
	args := m.Called(ctx, barberID, date)
	rows, _ := args.Get(0).([]domain.BookedInterval)
	return rows, args.Error(1)
}

func (m *mockRepo) InsertBooking(ctx context.Context, b *models.Booking, durationMinutes int) error {
	return m.Called(ctx, b, durationMinutes).Error(0)
}

func (m *mockRepo) UpdateBookingStatus(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) ListBookingsForBarber(ctx context.Context, barberID uint, from, to string) ([]models.Booking, error) {
	args := m.Called(ctx, barberID, from, to)
	rows, _ := args.Get(0).([]models.Booking)
	return rows, args.Error(1)
}

func (m *mockRepo) ListBookingsForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]models.Booking)
	return rows, args.Error(1)
}

func (m *mockRepo) GetActiveService(ctx context.Context, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, serviceID)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *mockRepo) GetBarber(ctx context.Context, barberID uint) (*models.Barber, error) {
	args := m.Called(ctx, barberID)
	b, _ := args.Get(0).(*models.Barber)
	return b, args.Error(1)
}

func (m *mockRepo) GetBarberByUserID(ctx context.Context, userID uint) (*models.Barber, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).(*models.Barber)
	return b, args.Error(1)
}

// memCache is an in-process SlotCache for use case tests.
type memCache struct {
	mu       sync.Mutex
	versions map[string]int64
	entries  map[string][]domain.Slot
}

func newMemCache() *memCache {
	return &memCache{versions: map[string]int64{}, entries: map[string][]domain.Slot{}}
}

func (c *memCache) key(barberID uint, date string, version int64, duration int) string {
	return fmt.Sprintf("%d|%s|%d|%d", barberID, date, version, duration)
}

func (c *memCache) Get(_ context.Context, barberID uint, date string, duration int) ([]domain.Slot, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.versions[fmt.Sprintf("%d|%s", barberID, date)]
	s, ok := c.entries[c.key(barberID, date, v, duration)]
	return s, v, ok
}

func (c *memCache) Set(_ context.Context, barberID uint, date string, duration int, version int64, slots []domain.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(barberID, date, version, duration)] = slots
}

func (c *memCache) Invalidate(_ context.Context, barberID uint, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[fmt.Sprintf("%d|%s", barberID, date)]++
}
