package entity

import (
	"time"

	"github.com/google/uuid"

	"tutorhub-api/core/entity"
)

// DayOfWeek is the recurring weekday a slot applies to.
type DayOfWeek string

const (
	DayMonday    DayOfWeek = "monday"
	DayTuesday   DayOfWeek = "tuesday"
	DayWednesday DayOfWeek = "wednesday"
	DayThursday  DayOfWeek = "thursday"
	DayFriday    DayOfWeek = "friday"
	DaySaturday  DayOfWeek = "saturday"
	DaySunday    DayOfWeek = "sunday"
)

// AllDays in display order, Monday first.
var AllDays = []DayOfWeek{
	DayMonday, DayTuesday, DayWednesday, DayThursday,
	DayFriday, DaySaturday, DaySunday,
}

func IsValidDay(d DayOfWeek) bool {
	for _, day := range AllDays {
		if day == d {
			return true
		}
	}
	return false
}

// DayFromWeekday maps a calendar weekday onto the slot enum.
func DayFromWeekday(w time.Weekday) DayOfWeek {
	switch w {
	case time.Monday:
		return DayMonday
	case time.Tuesday:
		return DayTuesday
	case time.Wednesday:
		return DayWednesday
	case time.Thursday:
		return DayThursday
	case time.Friday:
		return DayFriday
	case time.Saturday:
		return DaySaturday
	default:
		return DaySunday
	}
}

// AvailabilitySlot is a tutor's recurring weekly availability window.
// Times are wall-clock minutes since midnight; ranges are half-open
// [StartMinute, EndMinute).
type AvailabilitySlot struct {
	TutorID     uuid.UUID `db:"tutor_id" json:"tutor_id"`
	DayOfWeek   DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute" json:"end_minute"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	entity.BaseEntity
}

// Overlaps reports whether the slot's window intersects [start, end).
func (s *AvailabilitySlot) Overlaps(start, end int) bool {
	return s.StartMinute < end && start < s.EndMinute
}

// Covers reports whether the slot's window fully contains [start, end).
func (s *AvailabilitySlot) Covers(start, end int) bool {
	return s.StartMinute <= start && end <= s.EndMinute
}
