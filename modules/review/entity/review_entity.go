package entity

import (
	"time"

	"github.com/google/uuid"

	"tutorhub-api/core/entity"
)

// Review is a student's one-off rating of a completed booking. At most
// one review exists per booking; the tutor may respond once.
type Review struct {
	BookingID   uuid.UUID  `db:"booking_id" json:"booking_id"`
	StudentID   uuid.UUID  `db:"student_id" json:"student_id"`
	TutorID     uuid.UUID  `db:"tutor_id" json:"tutor_id"`
	Rating      int        `db:"rating" json:"rating"`
	Comment     string     `db:"comment" json:"comment"`
	Response    *string    `db:"response" json:"response,omitempty"`
	RespondedAt *time.Time `db:"responded_at" json:"responded_at,omitempty"`
	IsVisible   bool       `db:"is_visible" json:"is_visible"`
	entity.BaseEntity
}

type PaginatedReviewEntity = entity.Pagination[Review]
