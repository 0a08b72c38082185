package common

import (
	"time"

	"cems/src/models"
	"cems/src/types"

	"gorm.io/gorm"
)

// Overlaps reports whether two half-open intervals [s1,e1) and [s2,e2)
// intersect. Back-to-back events sharing a boundary instant do not.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// HasConflict scans approved events on a venue for overlap with the given
// window. Pending and rejected events never block. excludeEventID skips
// the event itself when re-validating an edit or approval.
func HasConflict(tx *gorm.DB, venueID uint, start, end time.Time, excludeEventID uint) (bool, error) {
	q := tx.
		Model(&models.Event{}).
		Where("venue_id = ? AND status = ?", venueID, types.EVENT_APPROVED).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeEventID > 0 {
		q = q.Where("id <> ?", excludeEventID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
