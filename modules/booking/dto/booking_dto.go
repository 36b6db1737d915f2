package dto

import (
	"time"

	coreDto "tutorhub-api/core/dto"
)

// ===================== Request DTOs =====================

// CreateBookingRequest is the student-facing booking request. Duration
// and price are always derived server-side.
type CreateBookingRequest struct {
	TutorID      string `json:"tutor_id" validate:"required,uuid"`
	Subject      string `json:"subject" validate:"required,max=200"`
	SessionDate  string `json:"session_date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	StudentNotes string `json:"student_notes" validate:"max=2000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type CompleteBookingRequest struct {
	TutorNotes string `json:"tutor_notes" validate:"max=2000"`
}

// ===================== Response DTOs =====================

type BookingResponse struct {
	ID              string     `json:"id"`
	Reference       string     `json:"reference"`
	StudentID       string     `json:"student_id"`
	TutorID         string     `json:"tutor_id"`
	Subject         string     `json:"subject"`
	SessionDate     string     `json:"session_date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	PriceCents      int64      `json:"price_cents"`
	Price           string     `json:"price"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	StudentNotes    string     `json:"student_notes,omitempty"`
	TutorNotes      string     `json:"tutor_notes,omitempty"`
	CancelledBy     string     `json:"cancelled_by,omitempty"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type PaginatedBookingResponse = coreDto.Pagination[BookingResponse]

// FreeWindow is one bookable gap in a tutor's day.
type FreeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// FreeSlotsResponse lists the remaining bookable windows for a tutor on
// one date: active availability minus pending/confirmed bookings.
type FreeSlotsResponse struct {
	TutorID     string       `json:"tutor_id"`
	SessionDate string       `json:"session_date"`
	DayOfWeek   string       `json:"day_of_week"`
	Windows     []FreeWindow `json:"windows"`
}

// SweepResult reports an on-demand no-show sweep.
type SweepResult struct {
	Swept      int      `json:"swept"`
	References []string `json:"references,omitempty"`
}
