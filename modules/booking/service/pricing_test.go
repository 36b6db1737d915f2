package service

import (
	"testing"

	"tutorhub-api/core/errors"
)

func TestQuoteWholeHours(t *testing.T) {
	// Whole-hour bookings must price exactly, no rounding drift.
	cases := []struct {
		rate     int64
		start    int
		end      int
		duration int
		price    int64
	}{
		{4000, 10 * 60, 11 * 60, 60, 4000},
		{4000, 9 * 60, 12 * 60, 180, 12000},
		{2550, 14 * 60, 16 * 60, 120, 5100},
		{0, 10 * 60, 11 * 60, 60, 0},
	}

	for _, tc := range cases {
		duration, price, appErr := Quote(tc.rate, tc.start, tc.end)
		if appErr != nil {
			t.Fatalf("Quote(%d, %d, %d) returned error %v", tc.rate, tc.start, tc.end, appErr)
		}
		if duration != tc.duration {
			t.Errorf("duration = %d, want %d", duration, tc.duration)
		}
		if price != tc.price {
			t.Errorf("price = %d, want %d", price, tc.price)
		}
	}
}

func TestQuoteRoundHalfUp(t *testing.T) {
	cases := []struct {
		name     string
		rate     int64
		duration int
		price    int64
	}{
		// 4000 * 90 / 60 = 6000 exactly
		{"ninety minutes", 4000, 90, 6000},
		// 4000 * 45 / 60 = 3000 exactly
		{"forty-five minutes", 4000, 45, 3000},
		// 3333 * 30 / 60 = 1666.5 -> 1667
		{"half cent rounds up", 3333, 30, 1667},
		// 1000 * 25 / 60 = 416.66.. -> 417
		{"above half rounds up", 1000, 25, 417},
		// 1000 * 20 / 60 = 333.33.. -> 333
		{"below half rounds down", 1000, 20, 333},
		// 1 * 1 / 60 = 0.016.. -> 0
		{"tiny amount", 1, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, price, appErr := Quote(tc.rate, 600, 600+tc.duration)
			if appErr != nil {
				t.Fatalf("unexpected error: %v", appErr)
			}
			if price != tc.price {
				t.Errorf("price = %d, want %d", price, tc.price)
			}
		})
	}
}

func TestQuoteInvalidRange(t *testing.T) {
	// 09:00-09:00 and inverted ranges are both rejected.
	for _, window := range [][2]int{{540, 540}, {600, 540}} {
		_, _, appErr := Quote(4000, window[0], window[1])
		if appErr == nil {
			t.Fatalf("Quote(%d, %d) succeeded, want error", window[0], window[1])
		}
		if appErr.Code != errors.ErrInvalidRange {
			t.Errorf("code = %s, want %s", appErr.Code, errors.ErrInvalidRange)
		}
	}
}
