package common

import (
	"cems/src/models"
	"cems/src/types"

	"gorm.io/gorm"
)

// EffectiveCapacity resolves the seat cap for an event: the event's own
// cap wins, then the venue cap. Zero on both means unbounded and the
// second result is false.
func EffectiveCapacity(event *models.Event) (uint, bool) {
	if event.Capacity > 0 {
		return event.Capacity, true
	}
	if event.Venue != nil && event.Venue.Capacity > 0 {
		return event.Venue.Capacity, true
	}
	return 0, false
}

// SeatsAvailable counts seats left against confirmed bookings only.
// Pending bookings hold no seat. The count is always taken fresh, never
// cached. Second result false means the event is unbounded.
func SeatsAvailable(tx *gorm.DB, event *models.Event) (int64, bool, error) {
	cap, limited := EffectiveCapacity(event)
	if !limited {
		return 0, false, nil
	}
	var taken int64
	err := tx.
		Model(&models.Booking{}).
		Where(&models.Booking{EventID: event.ID, Status: types.BOOKING_CONFIRMED}).
		Count(&taken).
		Error
	if err != nil {
		return 0, true, err
	}
	left := int64(cap) - taken
	if left < 0 {
		left = 0
	}
	return left, true, nil
}
