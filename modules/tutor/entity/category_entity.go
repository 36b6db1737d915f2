package entity

import (
	"github.com/google/uuid"

	"tutorhub-api/core/entity"
)

// Category is an admin-managed tag a tutor profile can carry.
type Category struct {
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
	entity.BaseEntity
}

// TutorCategory links a tutor profile to a category. The pair is unique.
type TutorCategory struct {
	TutorID    uuid.UUID `db:"tutor_id" json:"tutor_id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
}
