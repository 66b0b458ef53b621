package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// -------- Working hours --------

type WorkingHoursStore interface {
	// GetWorkingHours returns nil, nil when the barber has no row for weekday.
	GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error)
}

// -------- Time off --------

type TimeOffStore interface {
	ListOverlappingTimeOff(ctx context.Context, barberID uint, date string) ([]models.TimeOff, error)
}

// -------- Bookings --------

type BookingStore interface {
	// ListActiveIntervals returns the pending/confirmed bookings of the
	// barber on date with their service durations.
	ListActiveIntervals(ctx context.Context, barberID uint, date string) ([]BookedInterval, error)

	// InsertBooking persists b unless an active booking of the same barber
	// overlaps [b.BookingTime, +durationMinutes). Fails with a conflict or a
	// validation error (dangling reference).
	InsertBooking(ctx context.Context, b *models.Booking, durationMinutes int) error

	// UpdateBookingStatus fails with a not-found error when no row matches.
	UpdateBookingStatus(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	// ListBookingsForBarber returns bookings with from <= date < to.
	ListBookingsForBarber(ctx context.Context, barberID uint, from, to string) ([]models.Booking, error)

	ListBookingsForUser(ctx context.Context, userID uint) ([]models.Booking, error)
}

// -------- Catalog --------

type ServiceCatalog interface {
	// GetActiveService returns nil, nil for unknown or inactive services.
	GetActiveService(ctx context.Context, serviceID uint) (*models.Service, error)
}

type BarberDirectory interface {
	GetBarber(ctx context.Context, barberID uint) (*models.Barber, error)
	GetBarberByUserID(ctx context.Context, userID uint) (*models.Barber, error)
}

type Repository interface {
	WorkingHoursStore
	TimeOffStore
	BookingStore
	ServiceCatalog
	BarberDirectory
}

// Clock supplies "now" to use cases so that date-relative rules stay
// deterministic under test.
type Clock func() time.Time
