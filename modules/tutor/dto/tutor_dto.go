package dto

import (
	"time"

	coreDto "tutorhub-api/core/dto"
)

// ===================== Request DTOs =====================

// UpsertProfileRequest creates or updates the calling tutor's profile.
type UpsertProfileRequest struct {
	Headline        string `json:"headline" validate:"required,max=160"`
	Bio             string `json:"bio" validate:"max=4000"`
	HourlyRateCents int64  `json:"hourly_rate_cents" validate:"required,min=0"`
	Currency        string `json:"currency" validate:"omitempty,len=3"`
	IsActive        *bool  `json:"is_active"`
}

// CategoryRequest creates or renames a category (admin only).
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=80"`
	Description string `json:"description" validate:"max=500"`
}

// AssignCategoryRequest links the calling tutor's profile to a category.
type AssignCategoryRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

// ===================== Response DTOs =====================

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type TutorResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Slug            string             `json:"slug"`
	Headline        string             `json:"headline"`
	Bio             string             `json:"bio,omitempty"`
	HourlyRateCents int64              `json:"hourly_rate_cents"`
	HourlyRate      string             `json:"hourly_rate"`
	Currency        string             `json:"currency"`
	IsActive        bool               `json:"is_active"`
	RatingAvg       float64            `json:"rating_avg"`
	RatingCount     int                `json:"rating_count"`
	Categories      []CategoryResponse `json:"categories,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type PaginatedTutorResponse = coreDto.Pagination[TutorResponse]
