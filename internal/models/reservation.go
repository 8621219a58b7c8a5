package models

import "time"

// Reservation is one guest booking for a (date, time) slot.
// Date holds the calendar day at UTC midnight.
type Reservation struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	GuestName  string `gorm:"size:100;not null" json:"name"`
	GuestEmail string `gorm:"size:150;not null;index" json:"email"`
	GuestPhone string `gorm:"size:30;not null" json:"phone"`

	Date time.Time `gorm:"column:reservation_date;type:date;not null;index" json:"date"`
	Time string    `gorm:"column:slot_time;size:5;not null" json:"time"`

	PartySize       int    `gorm:"not null;check:chk_reservations_party_size,party_size BETWEEN 1 AND 20" json:"guests"`
	SpecialRequests string `gorm:"type:text;not null;default:''" json:"specialRequests"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
