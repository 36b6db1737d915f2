package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tutorhub-api/core/database"
	"tutorhub-api/core/logger"
	"tutorhub-api/modules/availability/entity"
)

// AvailabilityRepository handles availability_slots database operations.
type AvailabilityRepository struct {
	DB database.Database
}

func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract.
type AvailabilityRepositoryInterface interface {
	Create(ctx context.Context, slot *entity.AvailabilitySlot) (*entity.AvailabilitySlot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error)
	ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]entity.AvailabilitySlot, error)
	ListActiveByTutorDay(ctx context.Context, tutorID uuid.UUID, day entity.DayOfWeek) ([]entity.AvailabilitySlot, error)
	Toggle(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const slotColumns = `id, tutor_id, day_of_week, start_minute, end_minute, is_active, created_at, updated_at`

func (r *AvailabilityRepository) Create(ctx context.Context, slot *entity.AvailabilitySlot) (*entity.AvailabilitySlot, error) {
	query := `
		INSERT INTO availability_slots (tutor_id, day_of_week, start_minute, end_minute, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + slotColumns

	var created entity.AvailabilitySlot
	err := r.DB.GetContext(ctx, &created, query,
		slot.TutorID, slot.DayOfWeek, slot.StartMinute, slot.EndMinute, slot.IsActive)
	if err != nil {
		logger.Error("AvailabilityRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1`

	var slot entity.AvailabilitySlot
	err := r.DB.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetByID", err)
		return nil, err
	}

	return &slot, nil
}

func (r *AvailabilityRepository) ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE tutor_id = $1
		ORDER BY day_of_week, start_minute
	`

	var slots []entity.AvailabilitySlot
	err := r.DB.SelectContext(ctx, &slots, query, tutorID)
	if err != nil {
		logger.Error("AvailabilityRepository:ListByTutor", err)
		return nil, err
	}

	return slots, nil
}

func (r *AvailabilityRepository) ListActiveByTutorDay(ctx context.Context, tutorID uuid.UUID, day entity.DayOfWeek) ([]entity.AvailabilitySlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE tutor_id = $1 AND day_of_week = $2 AND is_active = TRUE
		ORDER BY start_minute
	`

	var slots []entity.AvailabilitySlot
	err := r.DB.SelectContext(ctx, &slots, query, tutorID, day)
	if err != nil {
		logger.Error("AvailabilityRepository:ListActiveByTutorDay", err)
		return nil, err
	}

	return slots, nil
}

// Toggle flips is_active and returns the updated slot.
func (r *AvailabilityRepository) Toggle(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	query := `
		UPDATE availability_slots
		SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + slotColumns

	var slot entity.AvailabilitySlot
	err := r.DB.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:Toggle", err)
		return nil, err
	}

	return &slot, nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM availability_slots WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("AvailabilityRepository:Delete", err)
		return err
	}
	return nil
}
