package common

import (
	"fmt"
	"log"

	"cems/src/db"
	"cems/src/lib/mailer"
	"cems/src/models"
	"cems/src/types"
)

// Notification fanout is strictly best-effort: every failure lands in the
// log and nothing propagates back into the workflow that triggered it.

// NotifyEventPublished broadcasts a newly bookable event to every active
// student account.
func NotifyEventPublished(eventID uint) {
	conn := db.GetDb()
	var event models.Event
	if err := conn.Preload("Venue").Where(&models.Event{ID: eventID}).First(&event).Error; err != nil {
		log.Printf("[notify] Error loading event %d: %s\n", eventID, err.Error())
		return
	}
	var recipients []string
	err := conn.
		Model(&models.User{}).
		Where("role = ? AND active = ?", types.ROLE_STUDENT, true).
		Pluck("email", &recipients).
		Error
	if err != nil {
		log.Printf("[notify] Error listing recipients: %s\n", err.Error())
		return
	}
	venueName := ""
	if event.Venue != nil {
		venueName = event.Venue.Name
	}
	subject := fmt.Sprintf("New event: %s", event.Title)
	body := fmt.Sprintf(
		"A new event is open for booking.\n\n%s\nVenue: %s\nStarts: %s\n",
		event.Title, venueName, event.StartTime.Format("2006-01-02 15:04"),
	)
	n := mailer.New(mailer.LoadConfig(conn))
	n.Send(recipients, subject, body)
}

// NotifyBookingPending tells the student their request is queued and
// nudges whoever owes the next approval.
func NotifyBookingPending(bookingID uint) {
	conn := db.GetDb()
	var booking models.Booking
	err := conn.
		Preload("Event").
		Preload("Event.Organizer").
		Preload("User").
		Where(&models.Booking{ID: bookingID}).
		First(&booking).
		Error
	if err != nil {
		log.Printf("[notify] Error loading booking %d: %s\n", bookingID, err.Error())
		return
	}
	if booking.Event == nil || booking.User == nil {
		return
	}
	n := mailer.New(mailer.LoadConfig(conn))
	n.Send(
		[]string{booking.User.Email},
		fmt.Sprintf("Booking received: %s", booking.Event.Title),
		fmt.Sprintf("Your booking for %s is pending approval. Ticket ID: %s\n", booking.Event.Title, booking.TicketToken),
	)

	var approvers []string
	if booking.Event.RequiresFacultyApproval && !booking.FacultyApproved {
		err := conn.
			Model(&models.User{}).
			Where("role = ? AND active = ?", types.ROLE_FACULTY, true).
			Pluck("email", &approvers).
			Error
		if err != nil {
			log.Printf("[notify] Error listing faculty: %s\n", err.Error())
		}
	}
	if !booking.OrganizerApproved && booking.Event.Organizer != nil {
		approvers = append(approvers, booking.Event.Organizer.Email)
	}
	if len(approvers) > 0 {
		n.Send(
			approvers,
			fmt.Sprintf("Approval needed: %s", booking.Event.Title),
			fmt.Sprintf("%s requested a seat for %s.\n", booking.User.FullName, booking.Event.Title),
		)
	}
}

// NotifyTicketIssued sends the confirmed ticket with whatever artifacts
// finalization managed to produce.
func NotifyTicketIssued(bookingID uint) {
	conn := db.GetDb()
	var booking models.Booking
	err := conn.
		Preload("Event").
		Preload("Event.Venue").
		Preload("User").
		Where(&models.Booking{ID: bookingID}).
		First(&booking).
		Error
	if err != nil {
		log.Printf("[notify] Error loading booking %d: %s\n", bookingID, err.Error())
		return
	}
	if booking.Event == nil || booking.User == nil {
		return
	}
	var attachments []string
	if booking.PDFPath != nil {
		attachments = append(attachments, *booking.PDFPath)
	} else if booking.QRPath != nil {
		attachments = append(attachments, *booking.QRPath)
	}
	venueName := ""
	if booking.Event.Venue != nil {
		venueName = booking.Event.Venue.Name
	}
	n := mailer.New(mailer.LoadConfig(conn))
	n.Send(
		[]string{booking.User.Email},
		fmt.Sprintf("Your ticket for %s", booking.Event.Title),
		fmt.Sprintf(
			"Your booking for %s is confirmed.\nVenue: %s\nStarts: %s\nTicket ID: %s\n",
			booking.Event.Title, venueName,
			booking.Event.StartTime.Format("2006-01-02 15:04"),
			booking.TicketToken,
		),
		attachments...,
	)
}
