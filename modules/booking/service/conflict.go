package service

import (
	"time"

	availEntity "tutorhub-api/modules/availability/entity"
	"tutorhub-api/modules/booking/entity"
)

// coveredByAvailability reports whether one active slot fully contains
// [start, end). Coverage by a chain of adjacent slots does not count; the
// request must fit a single window.
func coveredByAvailability(slots []availEntity.AvailabilitySlot, start, end int) bool {
	for i := range slots {
		if slots[i].IsActive && slots[i].Covers(start, end) {
			return true
		}
	}
	return false
}

// firstConflict returns the first non-terminal booking whose window
// intersects [start, end), or nil. Callers pass bookings already filtered
// to pending/confirmed on the requested date.
func firstConflict(existing []entity.Booking, start, end int) *entity.Booking {
	for i := range existing {
		if existing[i].Overlaps(start, end) {
			return &existing[i]
		}
	}
	return nil
}

// isPast reports whether the requested session start has already elapsed.
// A same-day booking starting at or before the current minute is past.
func isPast(sessionDate time.Time, startMinute int, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(sessionDate.Year(), sessionDate.Month(), sessionDate.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return true
	}
	if day.Equal(today) {
		nowMinute := now.Hour()*60 + now.Minute()
		return startMinute <= nowMinute
	}
	return false
}
