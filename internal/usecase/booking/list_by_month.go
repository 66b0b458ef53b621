package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	if year < 1 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListBookingsForBarber(
		ctx,
		barberID,
		start.Format(wallclock.DateLayout),
		end.Format(wallclock.DateLayout),
	)
	if err != nil {
		return nil, httperr.Unavailable("list_bookings_for_barber", err)
	}

	return toListDTO(bookings), nil
}
