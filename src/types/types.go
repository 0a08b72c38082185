package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type EventStatus string

const (
	EVENT_PENDING  EventStatus = "pending"
	EVENT_APPROVED EventStatus = "approved"
	EVENT_REJECTED EventStatus = "rejected"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

type VenueStatus string

const (
	VENUE_FREE    VenueStatus = "free"
	VENUE_BLOCKED VenueStatus = "blocked"
)

const (
	ROLE_STUDENT   = "student"
	ROLE_FACULTY   = "faculty"
	ROLE_ORGANIZER = "organizer"
	ROLE_ADMIN     = "admin"
)

type ApprovalKind string

const (
	APPROVAL_FACULTY   ApprovalKind = "faculty"
	APPROVAL_ORGANIZER ApprovalKind = "organizer"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateEventRequestBody struct {
	Title                   string `json:"title" binding:"required"`
	Description             string `json:"description,omitempty"`
	CategoryID              *uint  `json:"category,omitempty"`
	VenueID                 uint   `json:"venue" binding:"required"`
	Capacity                uint   `json:"capacity,omitempty"`
	StartTime               string `json:"start_time" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndTime                 string `json:"end_time" binding:"required,gtdate=StartTime" time_format:"2006-01-02 15:04:05 -07:00"`
	RequiresFacultyApproval bool   `json:"requires_faculty_approval,omitempty"`
	Draft                   bool   `json:"draft,omitempty"`
}

type UpdateEventRequestBody struct {
	Title                   *string `json:"title,omitempty"`
	Description             *string `json:"description,omitempty"`
	CategoryID              *uint   `json:"category,omitempty"`
	VenueID                 *uint   `json:"venue,omitempty"`
	Capacity                *uint   `json:"capacity,omitempty"`
	StartTime               *string `json:"start_time,omitempty" binding:"omitempty,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndTime                 *string `json:"end_time,omitempty"`
	RequiresFacultyApproval *bool   `json:"requires_faculty_approval,omitempty"`
}

type EventQueryFilters struct {
	Category string `form:"category,omitempty"`
}

type CreateVenueRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Capacity uint   `json:"capacity,omitempty"`
	Location string `json:"location,omitempty"`
}

type UpdateVenueRequestBody struct {
	Name     *string `json:"name,omitempty"`
	Capacity *uint   `json:"capacity,omitempty"`
	Location *string `json:"location,omitempty"`
}

type VenueActionRequestBody struct {
	Action string `json:"action" binding:"required,oneof=block free"`
}

type RegisterUserRequestBody struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FullName  string `json:"full_name" binding:"required"`
	Role      string `json:"role,omitempty" binding:"omitempty,oneof=student faculty organizer"`
	StudentID string `json:"student_id,omitempty"`
}

type LoginRequestBody struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type UpdateProfileRequestBody struct {
	FullName   *string `json:"full_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Year       *string `json:"year,omitempty"`
}

type CreateUserRequestBody struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FullName  string `json:"full_name" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=student faculty organizer admin"`
	StudentID string `json:"student_id,omitempty"`
}

type UpdateUserRequestBody struct {
	Role   *string `json:"role,omitempty" binding:"omitempty,oneof=student faculty organizer admin"`
	Active *bool   `json:"active,omitempty"`
}

type MailSettingsRequestBody struct {
	Server        string `json:"server" binding:"required"`
	Port          int    `json:"port" binding:"required"`
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	UseTLS        bool   `json:"use_tls,omitempty"`
	UseSSL        bool   `json:"use_ssl,omitempty"`
	DefaultSender string `json:"default_sender,omitempty"`
}
