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

// OverrideBookingStatus sets a status without consulting the lifecycle edges.
// Re-activating a booking whose start time was taken in the meantime fails
// with a conflict from the store.
type OverrideBookingStatus struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
	clock domain.Clock
}

func NewOverrideBookingStatus(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
	clock domain.Clock,
) *OverrideBookingStatus {
	if clock == nil {
		clock = time.Now
	}
	return &OverrideBookingStatus{
		repo:  repo,
		cache: orNop(cache),
		audit: audit,
		clock: clock,
	}
}

func (uc *OverrideBookingStatus) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uint,
	to domain.Status,
	reason string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.Unavailable("get_booking", err)
	}

	from := b.Status
	if err := domain.Override(b, actor, to, uc.clock()); err != nil {
		return nil, err
	}

	if err := saveStatus(ctx, uc.repo, uc.cache, b); err != nil {
		return nil, err
	}
	metrics.IncStatusChange(b.Status, "override")

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_status_override",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"from":   from,
			"to":     b.Status,
			"reason": reason,
		},
		RequestID: audit.RequestID(ctx),
	})

	return b, nil
}
