package models

import "time"

// Barber is a bookable professional. UserID links the barber to the login
// used for the barber panel.
type Barber struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
