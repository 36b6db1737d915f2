package utils

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 9*60 + 30},
		{"12:00", 12 * 60},
		{"23:59", 23*60 + 59},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "9:00am", "24:00", "12:60", "noon", "12", "12:3"} {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Errorf("ParseTimeOfDay(%q) succeeded, want error", in)
		}
	}
}

func TestFormatTimeOfDayRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 9*60 + 5, 12 * 60, 23*60 + 59} {
		s := FormatTimeOfDay(minutes)
		back, err := ParseTimeOfDay(s)
		if err != nil {
			t.Fatalf("round trip of %d via %q failed: %v", minutes, s, err)
		}
		if back != minutes {
			t.Errorf("round trip of %d = %d", minutes, back)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-09", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 9 {
		t.Errorf("ParseDate = %v, want 2026-03-09", got)
	}
	if FormatDate(got) != "2026-03-09" {
		t.Errorf("FormatDate = %s, want 2026-03-09", FormatDate(got))
	}

	for _, in := range []string{"", "03/09/2026", "2026-3-9", "2026-13-01", "tomorrow"} {
		if _, err := ParseDate(in, time.UTC); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", in)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{99, "0.99"},
		{100, "1.00"},
		{4000, "40.00"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}

	for _, tc := range cases {
		if got := FormatCents(tc.cents); got != tc.want {
			t.Errorf("FormatCents(%d) = %s, want %s", tc.cents, got, tc.want)
		}
	}
}
