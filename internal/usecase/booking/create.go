package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	BarberID  uint
	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher

	clock      domain.Clock
	loc        *time.Location
	minAdvance time.Duration
}

func NewCreateBooking(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
	clock domain.Clock,
	loc *time.Location,
	minAdvance time.Duration,
) *CreateBooking {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &CreateBooking{
		repo:       repo,
		cache:      orNop(cache),
		audit:      audit,
		clock:      clock,
		loc:        loc,
		minAdvance: minAdvance,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (_ *models.Booking, err error) {

	ctx, span := startSpan(ctx, "booking.Create", in.BarberID, in.Date)
	defer func() { endSpan(span, err) }()

	// --------------------------------------------------
	// 1. Date / time
	// --------------------------------------------------
	weekday, err := wallclock.Weekday(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	start, err := wallclock.ParseMinutes(in.Time)
	if err != nil || start >= 24*60 {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	startAt, err := wallclock.Combine(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 2. Service and barber
	// --------------------------------------------------
	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.Unavailable("get_active_service", err)
	}
	if svc == nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.Unavailable("get_barber", err)
	}
	if barber == nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// 3. Minimum advance
	// --------------------------------------------------
	if startAt.Before(uc.clock().Add(uc.minAdvance)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Working hours and time off
	// --------------------------------------------------
	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, weekday)
	if err != nil {
		return nil, httperr.Unavailable("get_working_hours", err)
	}
	window, open, err := domain.WorkingWindow(wh)
	if err != nil {
		return nil, httperr.Unavailable("get_working_hours", err)
	}
	if !open || !window.Fits(start, svc.DurationMinutes) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}
	// Only start times the slot list can offer are bookable.
	if (start-window.Start)%domain.SlotStepMinutes != 0 {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	timeOff, err := uc.repo.ListOverlappingTimeOff(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, httperr.Unavailable("list_time_off", err)
	}
	if domain.AnyCovers(timeOff, in.Date) {
		return nil, httperr.ErrBusiness("barber_time_off")
	}

	// --------------------------------------------------
	// 5. Commit (the store re-checks overlap)
	// --------------------------------------------------
	b := &models.Booking{
		UserID:      in.UserID,
		BarberID:    in.BarberID,
		ServiceID:   svc.ID,
		BookingDate: in.Date,
		BookingTime: wallclock.FormatMinutes(start),
		Status:      string(domain.InitialStatus()),
		TotalPrice:  svc.Price,
		Notes:       in.Notes,
	}

	if err := uc.repo.InsertBooking(ctx, b, svc.DurationMinutes); err != nil {
		if kind, ok := httperr.KindOf(err); ok && kind == httperr.KindConflict {
			metrics.IncBookingConflict()
		}
		return nil, httperr.Unavailable("insert_booking", err)
	}

	b.Service = *svc
	b.Barber = *barber

	uc.cache.Invalidate(ctx, b.BarberID, b.BookingDate)
	metrics.IncBookingCreated()

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"barber_id":    b.BarberID,
			"booking_date": b.BookingDate,
			"booking_time": b.BookingTime,
			"total_price":  b.TotalPrice,
		},
		RequestID: audit.RequestID(ctx),
	})

	return b, nil
}
