package dto

type BookingListDTO struct {
	ID              uint    `json:"id"`
	BookingDate     string  `json:"booking_date"`
	BookingTime     string  `json:"booking_time"`
	EndTime         string  `json:"end_time"`
	Status          string  `json:"status"`
	ClientName      string  `json:"client_name"`
	ServiceName     string  `json:"service_name"`
	DurationMinutes int     `json:"duration_minutes"`
	TotalPrice      float64 `json:"total_price"`
	Notes           string  `json:"notes,omitempty"`
}
