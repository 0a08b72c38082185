package models

import (
	"time"

	"cems/src/types"
)

type Event struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description *string `json:"description,omitempty"`
	Slug        string  `gorm:"index" json:"slug,omitempty"`

	CategoryID  *uint `json:"category_id,omitempty"`
	VenueID     uint  `gorm:"not null" json:"venue_id"`
	OrganizerID uint  `gorm:"not null" json:"organizer_id"`

	// Seat cap override. Zero defers to the venue capacity.
	Capacity uint `json:"capacity,omitempty"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status                  types.EventStatus `gorm:"default:'pending'" json:"status,omitempty"`
	RequiresFacultyApproval bool              `json:"requires_faculty_approval"`

	Category  *Category `gorm:"foreignKey:category_id" json:"category,omitempty"`
	Venue     *Venue    `gorm:"foreignKey:venue_id" json:"venue,omitempty"`
	Organizer *User     `gorm:"foreignKey:organizer_id" json:"organizer,omitempty"`
	Bookings  []Booking `gorm:"foreignKey:event_id" json:"bookings,omitempty"`

	types.Timestamps
}
