package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(repo domain.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]dto.BookingListDTO, error) {

	d, err := wallclock.ParseDate(date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	next := d.AddDate(0, 0, 1).Format(wallclock.DateLayout)

	bookings, err := uc.repo.ListBookingsForBarber(ctx, barberID, date, next)
	if err != nil {
		return nil, httperr.Unavailable("list_bookings_for_barber", err)
	}

	return toListDTO(bookings), nil
}

func toListDTO(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		end := b.BookingTime
		if start, err := wallclock.ParseMinutes(b.BookingTime); err == nil {
			end = wallclock.FormatMinutes(start + b.Service.DurationMinutes)
		}
		out = append(out, dto.BookingListDTO{
			ID:              b.ID,
			BookingDate:     b.BookingDate,
			BookingTime:     b.BookingTime,
			EndTime:         end,
			Status:          b.Status,
			ClientName:      b.User.Name,
			ServiceName:     b.Service.Name,
			DurationMinutes: b.Service.DurationMinutes,
			TotalPrice:      b.TotalPrice,
			Notes:           b.Notes,
		})
	}
	return out
}
