package entity

import (
	"testing"
	"time"
)

func TestDayFromWeekday(t *testing.T) {
	cases := []struct {
		in   time.Weekday
		want DayOfWeek
	}{
		{time.Monday, DayMonday},
		{time.Tuesday, DayTuesday},
		{time.Wednesday, DayWednesday},
		{time.Thursday, DayThursday},
		{time.Friday, DayFriday},
		{time.Saturday, DaySaturday},
		{time.Sunday, DaySunday},
	}

	for _, tc := range cases {
		if got := DayFromWeekday(tc.in); got != tc.want {
			t.Errorf("DayFromWeekday(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestSlotOverlapsAndCovers(t *testing.T) {
	s := AvailabilitySlot{StartMinute: 9 * 60, EndMinute: 12 * 60}

	// Half-open: touching windows do not overlap.
	if s.Overlaps(8*60, 9*60) {
		t.Error("window ending at slot start overlaps")
	}
	if s.Overlaps(12*60, 13*60) {
		t.Error("window starting at slot end overlaps")
	}
	if !s.Overlaps(11*60, 13*60) {
		t.Error("intersecting window does not overlap")
	}

	if !s.Covers(9*60, 12*60) {
		t.Error("slot does not cover its own bounds")
	}
	if !s.Covers(10*60, 11*60) {
		t.Error("slot does not cover an inner window")
	}
	if s.Covers(8*60+59, 10*60) {
		t.Error("slot covers a window starting before it")
	}
	if s.Covers(11*60, 12*60+1) {
		t.Error("slot covers a window ending after it")
	}
}

func TestIsValidDay(t *testing.T) {
	for _, day := range AllDays {
		if !IsValidDay(day) {
			t.Errorf("%s reported invalid", day)
		}
	}
	for _, bad := range []DayOfWeek{"", "Monday", "mon", "funday"} {
		if IsValidDay(bad) {
			t.Errorf("%q reported valid", bad)
		}
	}
}
