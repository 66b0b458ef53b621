package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// CancelBooking is the customer-facing shortcut for a transition to
// cancelled.
type CancelBooking struct {
	transition *TransitionBooking
}

func NewCancelBooking(transition *TransitionBooking) *CancelBooking {
	return &CancelBooking{transition: transition}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uint,
) (*models.Booking, error) {
	return uc.transition.Execute(ctx, actor, bookingID, domain.StatusCancelled)
}
