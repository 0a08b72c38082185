package common

import (
	"errors"

	"cems/src/db"
	"cems/src/models"
	"cems/src/types"
	"cems/src/utils"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// admitGate runs the venue and schedule checks an event must pass before
// it can hold or keep approved status.
func admitGate(tx *gorm.DB, venueID uint, event *models.Event) error {
	var venue models.Venue
	err := tx.Where(&models.Venue{ID: venueID}).First(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewValidationError("invalid venue")
		}
		return err
	}
	if venue.Status == types.VENUE_BLOCKED {
		return types.NewConflictError("venue is blocked for maintenance")
	}
	conflict, err := HasConflict(tx, venueID, event.StartTime, event.EndTime, event.ID)
	if err != nil {
		return err
	}
	if conflict {
		return types.NewConflictError("venue already has an approved event in this time slot")
	}
	return nil
}

// CreateEvent validates and admits a new event. Passing the gate admits
// it as approved outright; a draft submission parks it pending for admin
// review instead.
func CreateEvent(params *types.CreateEventRequestBody, organizerID uint) (uint, error) {
	startTime, endTime, err := utils.ParseEventWindow(params.StartTime, params.EndTime)
	if err != nil {
		return 0, types.NewValidationError("invalid event schedule format")
	}
	if !startTime.Before(endTime) {
		return 0, types.NewValidationError("event must start before it ends")
	}

	status := types.EVENT_APPROVED
	if params.Draft {
		status = types.EVENT_PENDING
	}
	event := models.Event{
		Title:                   params.Title,
		Slug:                    slug.Make(params.Title),
		CategoryID:              params.CategoryID,
		VenueID:                 params.VenueID,
		OrganizerID:             organizerID,
		Capacity:                params.Capacity,
		StartTime:               startTime,
		EndTime:                 endTime,
		Status:                  status,
		RequiresFacultyApproval: params.RequiresFacultyApproval,
	}
	if params.Description != "" {
		event.Description = &params.Description
	}

	conn := db.GetDb()
	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := admitGate(tx, params.VenueID, &event); err != nil {
			return err
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return 0, err
	}
	if event.Status == types.EVENT_APPROVED {
		NotifyEventPublished(event.ID)
	}
	return event.ID, nil
}

// ApproveEvent re-runs the admission gate and moves a pending event to
// approved. The scan excludes the event itself so a previously approved
// slot cannot collide with its own window.
func ApproveEvent(eventID uint) error {
	var approved bool
	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		err := tx.Where(&models.Event{ID: eventID}).First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("event not found")
			}
			return err
		}
		if event.Status == types.EVENT_APPROVED {
			return nil
		}
		if err := admitGate(tx, event.VenueID, &event); err != nil {
			return err
		}
		if err := tx.
			Model(&models.Event{}).
			Where("id = ?", event.ID).
			Update("status", types.EVENT_APPROVED).
			Error; err != nil {
			return err
		}
		approved = true
		return nil
	})
	if err != nil {
		return err
	}
	if approved {
		NotifyEventPublished(eventID)
	}
	return nil
}

// RejectEvent marks a pending event rejected.
func RejectEvent(eventID uint) error {
	conn := db.GetDb()
	return conn.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		err := tx.Where(&models.Event{ID: eventID}).First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("event not found")
			}
			return err
		}
		if event.Status != types.EVENT_PENDING {
			return types.NewConflictError("only pending events can be rejected")
		}
		return tx.
			Model(&models.Event{}).
			Where("id = ?", event.ID).
			Update("status", types.EVENT_REJECTED).
			Error
	})
}

// UpdateEvent applies an organizer edit. Changes to the venue or the
// window re-run the full admission gate against everything else on the
// venue calendar.
func UpdateEvent(eventID uint, params *types.UpdateEventRequestBody, userID uint, role string) error {
	conn := db.GetDb()
	return conn.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		err := tx.Where(&models.Event{ID: eventID}).First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("event not found")
			}
			return err
		}
		if event.OrganizerID != userID && role != types.ROLE_ADMIN {
			return types.NewAuthorizationError("not the organizer of this event")
		}

		updates := map[string]any{}
		if params.Title != nil {
			updates["title"] = *params.Title
			updates["slug"] = slug.Make(*params.Title)
		}
		if params.Description != nil {
			updates["description"] = *params.Description
		}
		if params.CategoryID != nil {
			updates["category_id"] = *params.CategoryID
		}
		if params.Capacity != nil {
			updates["capacity"] = *params.Capacity
		}
		if params.RequiresFacultyApproval != nil {
			updates["requires_faculty_approval"] = *params.RequiresFacultyApproval
		}

		regate := false
		if params.VenueID != nil && *params.VenueID != event.VenueID {
			event.VenueID = *params.VenueID
			updates["venue_id"] = *params.VenueID
			regate = true
		}
		if params.StartTime != nil || params.EndTime != nil {
			start := event.StartTime.Format("2006-01-02 15:04:05 -07:00")
			end := event.EndTime.Format("2006-01-02 15:04:05 -07:00")
			if params.StartTime != nil {
				start = *params.StartTime
			}
			if params.EndTime != nil {
				end = *params.EndTime
			}
			startTime, endTime, err := utils.ParseEventWindow(start, end)
			if err != nil {
				return types.NewValidationError("invalid event schedule format")
			}
			if !startTime.Before(endTime) {
				return types.NewValidationError("event must start before it ends")
			}
			event.StartTime = startTime
			event.EndTime = endTime
			updates["start_time"] = startTime
			updates["end_time"] = endTime
			regate = true
		}
		if regate {
			if err := admitGate(tx, event.VenueID, &event); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Event{}).Where("id = ?", event.ID).Updates(updates).Error
	})
}
