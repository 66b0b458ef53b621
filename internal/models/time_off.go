package models

import "time"

// TimeOff blocks a barber for every date in [StartDate, EndDate].
type TimeOff struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index;not null" json:"barber_id"`

	StartDate string `gorm:"size:10;not null" json:"start_date"`
	EndDate   string `gorm:"size:10;not null" json:"end_date"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (TimeOff) TableName() string {
	return "time_off"
}

// Covers reports whether date falls inside the range. Dates compare
// lexically because they are zero-padded.
func (t TimeOff) Covers(date string) bool {
	return t.StartDate <= date && date <= t.EndDate
}
