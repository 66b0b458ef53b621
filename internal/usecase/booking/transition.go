package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// TransitionBooking moves a booking along the lifecycle. Customers can only
// cancel their own bookings; barbers and admins follow the edge table.
type TransitionBooking struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
	clock domain.Clock
}

func NewTransitionBooking(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
	clock domain.Clock,
) *TransitionBooking {
	if clock == nil {
		clock = time.Now
	}
	return &TransitionBooking{
		repo:  repo,
		cache: orNop(cache),
		audit: audit,
		clock: clock,
	}
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uint,
	to domain.Status,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.Unavailable("get_booking", err)
	}

	now := uc.clock()
	path := "transition"

	if actor.Role == models.RoleCustomer {
		if to != domain.StatusCancelled {
			return nil, httperr.ErrForbidden("not_booking_owner")
		}
		err = domain.Cancel(b, actor, now)
		path = "cancel"
	} else {
		err = domain.Transition(b, actor, to, now)
	}
	if err != nil {
		return nil, err
	}

	if err := saveStatus(ctx, uc.repo, uc.cache, b); err != nil {
		return nil, err
	}
	metrics.IncStatusChange(b.Status, path)

	uc.audit.Dispatch(audit.Event{
		UserID:    &actor.UserID,
		Action:    "booking_" + b.Status,
		Entity:    "booking",
		EntityID:  &b.ID,
		RequestID: audit.RequestID(ctx),
	})

	return b, nil
}

func saveStatus(ctx context.Context, repo domain.BookingStore, cache SlotCache, b *models.Booking) error {
	if err := repo.UpdateBookingStatus(ctx, b); err != nil {
		return httperr.Unavailable("update_booking_status", err)
	}
	cache.Invalidate(ctx, b.BarberID, b.BookingDate)
	return nil
}
