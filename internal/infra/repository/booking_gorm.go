package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", barberID, true).
		First(&barber).Error
	if httperr.IsRecordNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetBarberByUserID(
	ctx context.Context,
	userID uint,
) (*models.Barber, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&barber).Error
	if httperr.IsRecordNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", serviceID, true).
		First(&service).Error
	if httperr.IsRecordNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, weekday).
		First(&wh).Error
	if httperr.IsRecordNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *BookingGormRepository) ListOverlappingTimeOff(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.TimeOff, error) {

	var rows []models.TimeOff
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND start_date <= ? AND end_date >= ?", barberID, date, date).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) ListActiveIntervals(
	ctx context.Context,
	barberID uint,
	date string,
) ([]domain.BookedInterval, error) {
	return activeIntervals(r.db.WithContext(ctx), barberID, date)
}

func activeIntervals(tx *gorm.DB, barberID uint, date string) ([]domain.BookedInterval, error) {
	var out []domain.BookedInterval
	if err := tx.
		Table("bookings").
		Select("bookings.booking_time, services.duration_minutes").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where(
			"bookings.barber_id = ? AND bookings.booking_date = ? AND bookings.status IN ?",
			barberID, date, domain.ActiveStatuses(),
		).
		Order("bookings.booking_time ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Booking (commit)
// --------------------------------------------------

func (r *BookingGormRepository) InsertBooking(
	ctx context.Context,
	b *models.Booking,
	durationMinutes int,
) error {

	start, err := wallclock.ParseMinutes(b.BookingTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	end := start + durationMinutes

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// The barber row is the per-barber commit mutex: locking the bookings
		// themselves would not block an empty day.
		var barber models.Barber
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", b.BarberID).
			Take(&barber).Error; err != nil {

			if httperr.IsRecordNotFound(err) {
				return httperr.ErrBusiness("invalid_reference")
			}
			return err
		}

		busy, err := activeIntervals(tx, b.BarberID, b.BookingDate)
		if err != nil {
			return err
		}

		for _, iv := range busy {
			bStart, err := wallclock.ParseMinutes(iv.BookingTime)
			if err != nil {
				return err
			}
			if domain.Overlaps(start, end, bStart, bStart+iv.DurationMinutes) {
				return httperr.ErrConflict("slot_already_booked")
			}
		}

		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return translateWriteError(err)
		}
		return nil
	})
}

// translateWriteError maps constraint violations onto the booking taxonomy.
// Anything else is returned unchanged.
func translateWriteError(err error) error {
	switch {
	case httperr.IsUniqueViolation(err):
		return httperr.ErrConflict("slot_already_booked")
	case httperr.IsForeignKeyViolation(err):
		return httperr.ErrBusiness("invalid_reference")
	}
	return err
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		First(&b, id).Error
	if httperr.IsRecordNotFound(err) {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	b *models.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"status":       b.Status,
			"cancelled_at": b.CancelledAt,
			"completed_at": b.CompletedAt,
		})
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("booking_not_found")
	}
	return nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForBarber(
	ctx context.Context,
	barberID uint,
	from string,
	to string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Where(
			"barber_id = ? AND booking_date >= ? AND booking_date < ?",
			barberID, from, to,
		).
		Order("booking_date ASC, booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("user_id = ?", userID).
		Order("booking_date ASC, booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
