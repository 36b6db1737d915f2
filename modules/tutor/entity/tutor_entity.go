package entity

import (
	"github.com/google/uuid"

	"tutorhub-api/core/entity"
)

// TutorProfile is the public face of a tutor: rate, blurb, categories,
// rating aggregates. Rates and prices are currency minor units (cents).
type TutorProfile struct {
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	Slug            string    `db:"slug" json:"slug"`
	Headline        string    `db:"headline" json:"headline"`
	Bio             string    `db:"bio" json:"bio"`
	HourlyRateCents int64     `db:"hourly_rate_cents" json:"hourly_rate_cents"`
	Currency        string    `db:"currency" json:"currency"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	RatingAvg       float64   `db:"rating_avg" json:"rating_avg"`
	RatingCount     int       `db:"rating_count" json:"rating_count"`
	entity.BaseEntity
}

type PaginatedTutorEntity = entity.Pagination[TutorProfile]

// SearchFilters are the per-request tutor search parameters. They arrive as
// query parameters and are never stored server-side.
type SearchFilters struct {
	Query        string
	CategorySlug string
	MinRateCents int64
	MaxRateCents int64
	MinRating    float64
}
