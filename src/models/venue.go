package models

import "cems/src/types"

type Venue struct {
	ID       uint              `gorm:"primarykey" json:"id"`
	Name     string            `gorm:"uniqueIndex;not null" json:"name"`
	Capacity uint              `json:"capacity,omitempty"`
	Status   types.VenueStatus `gorm:"default:'free'" json:"status,omitempty"`
	Location string            `json:"location,omitempty"`

	Events []Event `gorm:"foreignKey:venue_id" json:"events,omitempty"`

	types.Timestamps
}
