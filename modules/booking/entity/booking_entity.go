package entity

import (
	"time"

	"github.com/google/uuid"

	"tutorhub-api/core/entity"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Booking is a single scheduled session between a student and a tutor.
// Duration and price are derived server-side and never trusted from the
// caller.
type Booking struct {
	Reference       string        `db:"reference" json:"reference"`
	StudentID       uuid.UUID     `db:"student_id" json:"student_id"`
	TutorID         uuid.UUID     `db:"tutor_id" json:"tutor_id"`
	TutorProfileID  uuid.UUID     `db:"tutor_profile_id" json:"tutor_profile_id"`
	Subject         string        `db:"subject" json:"subject"`
	SessionDate     time.Time     `db:"session_date" json:"session_date"`
	StartMinute     int           `db:"start_minute" json:"start_minute"`
	EndMinute       int           `db:"end_minute" json:"end_minute"`
	DurationMinutes int           `db:"duration_minutes" json:"duration_minutes"`
	PriceCents      int64         `db:"price_cents" json:"price_cents"`
	Currency        string        `db:"currency" json:"currency"`
	Status          BookingStatus `db:"status" json:"status"`
	StudentNotes    string        `db:"student_notes" json:"student_notes"`
	TutorNotes      string        `db:"tutor_notes" json:"tutor_notes"`
	CancelledBy     *uuid.UUID    `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CancelReason    *string       `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time    `db:"cancelled_at" json:"cancelled_at,omitempty"`
	entity.BaseEntity
}

// Overlaps reports whether [start, end) intersects this booking's window.
// Half-open semantics: a window ending exactly when another starts does
// not conflict.
func (b *Booking) Overlaps(start, end int) bool {
	return b.StartMinute < end && start < b.EndMinute
}

// IsParticipant reports whether the user is the student or tutor on this
// booking.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.StudentID == userID || b.TutorID == userID
}

type PaginatedBookingEntity = entity.Pagination[Booking]
