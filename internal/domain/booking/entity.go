package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Actor is the authenticated caller of a booking mutation.
type Actor struct {
	UserID uint
	Role   string
	// BarberID is set when the user is linked to a barber profile.
	BarberID uint
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) IsBarber() bool {
	return a.Role == models.RoleBarber && a.BarberID != 0
}

// Manages reports whether the actor may act on b as its barber or as an admin.
func (a Actor) Manages(b *models.Booking) bool {
	return a.IsAdmin() || (a.IsBarber() && b.BarberID == a.BarberID)
}

// ===============================
// Domain Actions
// ===============================

// Cancel is the customer path: only the booking's owner, only from an active
// status.
func Cancel(b *models.Booking, actor Actor, now time.Time) error {
	if b.UserID != actor.UserID {
		return httperr.ErrForbidden("not_booking_owner")
	}
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	apply(b, StatusCancelled, now)
	return nil
}

// Transition is the staff path: a barber on their own bookings, or an
// admin, moving along the lifecycle edges.
func Transition(b *models.Booking, actor Actor, to Status, now time.Time) error {
	if !actor.Manages(b) {
		return httperr.ErrForbidden("not_booking_owner")
	}
	if !CanTransition(Status(b.Status), to) {
		return httperr.ErrBusiness("invalid_transition")
	}

	apply(b, to, now)
	return nil
}

// Override sets any status without consulting the lifecycle. It exists for
// data fixes and is audited separately by callers.
func Override(b *models.Booking, actor Actor, to Status, now time.Time) error {
	if !actor.Manages(b) {
		return httperr.ErrForbidden("not_booking_owner")
	}

	apply(b, to, now)
	return nil
}

func apply(b *models.Booking, to Status, now time.Time) {
	b.Status = string(to)
	switch to {
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}
}
