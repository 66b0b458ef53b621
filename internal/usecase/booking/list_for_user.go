package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

type BookingHistory struct {
	Upcoming []models.Booking `json:"upcoming"`
	Past     []models.Booking `json:"past"`
}

// ListBookingsForUser splits a customer's bookings around now. Upcoming
// holds active bookings that have not started yet; everything else is past.
type ListBookingsForUser struct {
	repo  domain.Repository
	clock domain.Clock
	loc   *time.Location
}

func NewListBookingsForUser(
	repo domain.Repository,
	clock domain.Clock,
	loc *time.Location,
) *ListBookingsForUser {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ListBookingsForUser{repo: repo, clock: clock, loc: loc}
}

func (uc *ListBookingsForUser) Execute(
	ctx context.Context,
	userID uint,
) (*BookingHistory, error) {

	bookings, err := uc.repo.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, httperr.Unavailable("list_bookings_for_user", err)
	}

	now := uc.clock().In(uc.loc)
	today := wallclock.Today(now)
	nowHM := now.Format(wallclock.TimeLayout)

	out := &BookingHistory{
		Upcoming: []models.Booking{},
		Past:     []models.Booking{},
	}
	for _, b := range bookings {
		ahead := b.BookingDate > today ||
			(b.BookingDate == today && b.BookingTime > nowHM)

		if ahead && domain.Status(b.Status).IsActive() {
			out.Upcoming = append(out.Upcoming, b)
			continue
		}
		out.Past = append(out.Past, b)
	}

	// most recent first
	for i, j := 0, len(out.Past)-1; i < j; i, j = i+1, j-1 {
		out.Past[i], out.Past[j] = out.Past[j], out.Past[i]
	}

	return out, nil
}
