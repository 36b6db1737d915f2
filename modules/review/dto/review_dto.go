package dto

import (
	"time"

	coreDto "tutorhub-api/core/dto"
)

// ===================== Request DTOs =====================

type CreateReviewRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required"`
	Comment   string `json:"comment" validate:"max=2000"`
}

type RespondToReviewRequest struct {
	Response string `json:"response" validate:"max=2000"`
}

type SetVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" validate:"required"`
}

// ===================== Response DTOs =====================

type ReviewResponse struct {
	ID          string     `json:"id"`
	BookingID   string     `json:"booking_id"`
	StudentID   string     `json:"student_id"`
	TutorID     string     `json:"tutor_id"`
	Rating      int        `json:"rating"`
	Comment     string     `json:"comment,omitempty"`
	Response    string     `json:"response,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	IsVisible   bool       `json:"is_visible"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PaginatedReviewResponse = coreDto.Pagination[ReviewResponse]
