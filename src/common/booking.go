package common

import (
	"errors"
	"fmt"
	"log"

	"cems/src/db"
	"cems/src/lib/artifacts"
	"cems/src/models"
	"cems/src/types"
	"cems/src/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingResult struct {
	BookingID     uint                `json:"id"`
	TicketToken   string              `json:"ticket_token"`
	Status        types.BookingStatus `json:"status"`
	AlreadyBooked bool                `json:"already_booked,omitempty"`
}

// ApprovalsSatisfied is the finalization gate. Events that skip faculty
// review confirm on the organizer flag alone; order of approvals never
// matters, only the flag set.
func ApprovalsSatisfied(event *models.Event, booking *models.Booking) bool {
	if event.RequiresFacultyApproval {
		return booking.FacultyApproved && booking.OrganizerApproved
	}
	return booking.OrganizerApproved
}

// CreateBooking admits a seat request for an event. The event row is
// locked for the duration of the transaction so the seat check and the
// insert serialize per event. Rebooking an event the user already holds
// a live booking for returns that booking unchanged.
func CreateBooking(userID uint, role string, eventID uint) (*BookingResult, error) {
	var result BookingResult
	var confirmedNow bool
	var bookingID uint
	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Venue").
			Where(&models.Event{ID: eventID}).
			First(&event).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("event not found")
			}
			return err
		}
		if event.Status != types.EVENT_APPROVED && role != types.ROLE_ADMIN {
			return types.NewConflictError("event is not open for booking")
		}

		var existing models.Booking
		err = tx.
			Where("user_id = ? AND event_id = ? AND status <> ?", userID, eventID, types.BOOKING_CANCELLED).
			First(&existing).
			Error
		if err == nil {
			result = BookingResult{
				BookingID:     existing.ID,
				TicketToken:   existing.TicketToken,
				Status:        existing.Status,
				AlreadyBooked: true,
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		left, limited, err := SeatsAvailable(tx, &event)
		if err != nil {
			return err
		}
		if limited && left <= 0 {
			return types.NewConflictError("event is sold out")
		}

		booking := models.Booking{
			TicketToken: utils.NewTicketToken(),
			UserID:      userID,
			EventID:     eventID,
			Status:      types.BOOKING_PENDING,
		}
		// Organizers and admins booking their own flow skip the organizer
		// queue when no faculty sign-off is needed.
		if !event.RequiresFacultyApproval && (role == types.ROLE_ORGANIZER || role == types.ROLE_ADMIN) {
			booking.OrganizerApproved = true
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		booking.Event = &event
		confirmedNow, err = finalizeIfReady(tx, &booking)
		if err != nil {
			return err
		}
		bookingID = booking.ID
		result = BookingResult{
			BookingID:   booking.ID,
			TicketToken: booking.TicketToken,
			Status:      booking.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.AlreadyBooked {
		return &result, nil
	}
	if confirmedNow {
		NotifyTicketIssued(bookingID)
	} else {
		NotifyBookingPending(bookingID)
	}
	return &result, nil
}

// ApproveBooking records one approval flag and re-runs the finalize
// check. Approving an already-set flag is a no-op. Confirmed bookings
// are terminal and accept no further approvals.
func ApproveBooking(bookingID uint, approverID uint, role string, kind types.ApprovalKind) (*BookingResult, error) {
	var result BookingResult
	var confirmedNow bool
	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Event").
			Preload("Event.Venue").
			Preload("User").
			Where(&models.Booking{ID: bookingID}).
			First(&booking).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("booking not found")
			}
			return err
		}
		if booking.Status == types.BOOKING_CANCELLED {
			return types.NewConflictError("booking is cancelled")
		}

		switch kind {
		case types.APPROVAL_FACULTY:
			if role != types.ROLE_FACULTY && role != types.ROLE_ADMIN {
				return types.NewAuthorizationError("faculty role required")
			}
			if !booking.Event.RequiresFacultyApproval {
				return types.NewValidationError("booking does not require faculty approval")
			}
			if !booking.FacultyApproved {
				booking.FacultyApproved = true
				if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("faculty_approved", true).Error; err != nil {
					return err
				}
			}
		case types.APPROVAL_ORGANIZER:
			if role == types.ROLE_ORGANIZER && booking.Event.OrganizerID != approverID {
				return types.NewAuthorizationError("not the organizer of this event")
			}
			if role != types.ROLE_ORGANIZER && role != types.ROLE_ADMIN {
				return types.NewAuthorizationError("organizer role required")
			}
			if !booking.OrganizerApproved {
				booking.OrganizerApproved = true
				if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("organizer_approved", true).Error; err != nil {
					return err
				}
			}
		default:
			return types.NewValidationError(fmt.Sprintf("unknown approval kind: %s", kind))
		}

		confirmedNow, err = finalizeIfReady(tx, &booking)
		if err != nil {
			return err
		}
		result = BookingResult{
			BookingID:   booking.ID,
			TicketToken: booking.TicketToken,
			Status:      booking.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if confirmedNow {
		NotifyTicketIssued(bookingID)
	}
	return &result, nil
}

// CancelBooking releases a pending booking. Only the owner or an admin
// may cancel, and a confirmed booking cannot be unwound here.
func CancelBooking(bookingID uint, userID uint, role string) error {
	conn := db.GetDb()
	return conn.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("booking not found")
			}
			return err
		}
		if booking.UserID != userID && role != types.ROLE_ADMIN {
			return types.NewAuthorizationError("not your booking")
		}
		if booking.Status == types.BOOKING_CONFIRMED {
			return types.NewConflictError("booking already confirmed")
		}
		if booking.Status == types.BOOKING_CANCELLED {
			return nil
		}
		return tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("status", types.BOOKING_CANCELLED).
			Error
	})
}

// finalizeIfReady runs the confirmation pipeline when the approval gate
// passes: flip to confirmed, generate artifacts best-effort, persist.
// Mail goes out after the surrounding transaction commits, driven by the
// returned flag. A booking already confirmed is left untouched.
func finalizeIfReady(tx *gorm.DB, booking *models.Booking) (bool, error) {
	if booking.Status == types.BOOKING_CONFIRMED {
		return false, nil
	}
	if booking.Event == nil {
		return false, errors.New("finalize: event not loaded")
	}
	if !ApprovalsSatisfied(booking.Event, booking) {
		return false, nil
	}

	if booking.User == nil {
		var attendee models.User
		if err := tx.Where(&models.User{ID: booking.UserID}).First(&attendee).Error; err != nil {
			log.Printf("[booking] Error loading attendee for %s: %s\n", booking.TicketToken, err.Error())
		} else {
			booking.User = &attendee
		}
	}
	if booking.Event.Organizer == nil {
		var organizer models.User
		if err := tx.Where(&models.User{ID: booking.Event.OrganizerID}).First(&organizer).Error; err != nil {
			log.Printf("[booking] Error loading organizer for %s: %s\n", booking.TicketToken, err.Error())
		} else {
			booking.Event.Organizer = &organizer
		}
	}

	booking.Status = types.BOOKING_CONFIRMED
	if booking.QRPath == nil {
		booking.QRPath = artifacts.MakeCode(booking.TicketToken)
	}
	if booking.PDFPath == nil {
		booking.PDFPath = artifacts.MakeDocument(booking.TicketToken, ticketDocumentInfo(booking), booking.QRPath)
	}
	if booking.QRPath == nil && booking.PDFPath == nil {
		log.Printf("[booking] No artifacts generated for %s, confirming anyway\n", booking.TicketToken)
	}

	err := tx.
		Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Updates(map[string]any{
			"status":   types.BOOKING_CONFIRMED,
			"qr_path":  booking.QRPath,
			"pdf_path": booking.PDFPath,
		}).
		Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// ticketDocumentInfo collects the printable details from whatever
// relations are loaded on the booking.
func ticketDocumentInfo(booking *models.Booking) artifacts.DocumentInfo {
	info := artifacts.DocumentInfo{
		EventTitle: booking.Event.Title,
		Schedule: fmt.Sprintf("%s - %s",
			booking.Event.StartTime.Format("2006-01-02 15:04"),
			booking.Event.EndTime.Format("2006-01-02 15:04")),
	}
	if booking.Event.Venue != nil {
		info.VenueName = booking.Event.Venue.Name
		info.VenueLocation = booking.Event.Venue.Location
	}
	if booking.Event.Organizer != nil {
		info.Organizer = booking.Event.Organizer.FullName
	}
	if booking.User != nil {
		info.Attendee = booking.User.FullName
	}
	return info
}
