package models

import "cems/src/types"

type Booking struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	TicketToken string `gorm:"uniqueIndex;not null" json:"ticket_token"`

	UserID  uint `gorm:"index;not null" json:"user_id"`
	EventID uint `gorm:"index;not null" json:"event_id"`

	Status            types.BookingStatus `gorm:"default:'pending'" json:"status"`
	FacultyApproved   bool                `json:"faculty_approved"`
	OrganizerApproved bool                `json:"organizer_approved"`

	// Artifact handles, written once during finalization. Nil means the
	// generator failed or has not run.
	QRPath  *string `json:"qr_path,omitempty"`
	PDFPath *string `json:"pdf_path,omitempty"`

	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
