package service

import (
	"context"

	"github.com/google/uuid"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/utils"
	"tutorhub-api/modules/availability/dto"
	"tutorhub-api/modules/availability/entity"
	"tutorhub-api/modules/availability/repository"
)

// AvailabilityService owns a tutor's recurring weekly schedule.
type AvailabilityService struct {
	repo repository.AvailabilityRepositoryInterface
}

// AvailabilityServiceInterface defines the service contract.
type AvailabilityServiceInterface interface {
	AddSlot(ctx context.Context, tutorID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, *errors.AppError)
	BulkAddSlots(ctx context.Context, tutorID uuid.UUID, req *dto.BulkCreateSlotsRequest) (*dto.BulkCreateSlotsResponse, *errors.AppError)
	GetMySchedule(ctx context.Context, tutorID uuid.UUID) (dto.WeeklyScheduleResponse, *errors.AppError)
	GetPublicSchedule(ctx context.Context, tutorID uuid.UUID) (dto.WeeklyScheduleResponse, *errors.AppError)
	ToggleSlot(ctx context.Context, actorID uuid.UUID, slotID uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	DeleteSlot(ctx context.Context, actorID uuid.UUID, slotID uuid.UUID) *errors.AppError
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface) AvailabilityServiceInterface {
	return &AvailabilityService{repo: repo}
}

// AddSlot creates one slot after range and overlap checks against the
// tutor's active slots on the same day.
func (s *AvailabilityService) AddSlot(ctx context.Context, tutorID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	day := entity.DayOfWeek(req.DayOfWeek)
	start, end, appErr := parseRange(req.StartTime, req.EndTime)
	if appErr != nil {
		return nil, appErr
	}

	created, appErr := s.addOne(ctx, tutorID, day, start, end)
	if appErr != nil {
		return nil, appErr
	}

	logger.Info("AvailabilityService:AddSlot:Success",
		"tutor_id", tutorID, "day", day, "slot_id", created.ID)
	return dto.ToSlotResponse(created), nil
}

// BulkAddSlots applies the same time range across the selected days. Days
// succeed or fail independently; there is no cross-day atomicity.
func (s *AvailabilityService) BulkAddSlots(ctx context.Context, tutorID uuid.UUID, req *dto.BulkCreateSlotsRequest) (*dto.BulkCreateSlotsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	start, end, appErr := parseRange(req.StartTime, req.EndTime)
	if appErr != nil {
		return nil, appErr
	}

	seen := make(map[string]bool, len(req.Days))
	results := make([]dto.BulkSlotResult, 0, len(req.Days))
	for _, dayStr := range req.Days {
		if seen[dayStr] {
			continue
		}
		seen[dayStr] = true

		result := dto.BulkSlotResult{Day: dayStr}
		created, addErr := s.addOne(ctx, tutorID, entity.DayOfWeek(dayStr), start, end)
		if addErr != nil {
			result.Error = &dto.BulkSlotError{Code: addErr.Code, Message: addErr.Message}
		} else {
			result.Slot = dto.ToSlotResponse(created)
		}
		results = append(results, result)
	}

	return &dto.BulkCreateSlotsResponse{Results: results}, nil
}

func (s *AvailabilityService) addOne(ctx context.Context, tutorID uuid.UUID, day entity.DayOfWeek, start, end int) (*entity.AvailabilitySlot, *errors.AppError) {
	existing, err := s.repo.ListActiveByTutorDay(ctx, tutorID, day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load existing slots", err)
	}

	for i := range existing {
		if existing[i].Overlaps(start, end) {
			return nil, errors.NewAppError(errors.ErrOverlapConflict,
				"Slot overlaps an existing active slot on "+string(day), nil)
		}
	}

	slot := &entity.AvailabilitySlot{
		TutorID:     tutorID,
		DayOfWeek:   day,
		StartMinute: start,
		EndMinute:   end,
		IsActive:    true,
	}

	created, err := s.repo.Create(ctx, slot)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create slot", err)
	}
	return created, nil
}

// GetMySchedule returns the tutor's full week, inactive slots included.
func (s *AvailabilityService) GetMySchedule(ctx context.Context, tutorID uuid.UUID) (dto.WeeklyScheduleResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	slots, err := s.repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load schedule", err)
	}

	return dto.ToWeeklySchedule(slots), nil
}

// GetPublicSchedule returns only the active slots, for booking pages.
func (s *AvailabilityService) GetPublicSchedule(ctx context.Context, tutorID uuid.UUID) (dto.WeeklyScheduleResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	slots, err := s.repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load schedule", err)
	}

	active := slots[:0:0]
	for _, slot := range slots {
		if slot.IsActive {
			active = append(active, slot)
		}
	}

	return dto.ToWeeklySchedule(active), nil
}

// ToggleSlot flips a slot's active flag. Reactivating does not re-check
// overlaps; a reintroduced overlap is treated as pre-existing state.
func (s *AvailabilityService) ToggleSlot(ctx context.Context, actorID uuid.UUID, slotID uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.authorize(ctx, actorID, slotID); appErr != nil {
		return nil, appErr
	}

	slot, err := s.repo.Toggle(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to toggle slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}

	return dto.ToSlotResponse(slot), nil
}

// DeleteSlot hard-deletes a slot. Existing bookings are unaffected.
func (s *AvailabilityService) DeleteSlot(ctx context.Context, actorID uuid.UUID, slotID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.authorize(ctx, actorID, slotID); appErr != nil {
		return appErr
	}

	if err := s.repo.Delete(ctx, slotID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete slot", err)
	}

	return nil
}

func (s *AvailabilityService) authorize(ctx context.Context, actorID uuid.UUID, slotID uuid.UUID) *errors.AppError {
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to load slot", err)
	}
	if slot == nil {
		return errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	if slot.TutorID != actorID {
		return errors.NewAppError(errors.ErrForbidden, "Only the owning tutor may modify this slot", nil)
	}
	return nil
}

func parseRange(startStr, endStr string) (int, int, *errors.AppError) {
	start, err := utils.ParseTimeOfDay(startStr)
	if err != nil {
		return 0, 0, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	end, err := utils.ParseTimeOfDay(endStr)
	if err != nil {
		return 0, 0, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if start >= end {
		return 0, 0, errors.NewAppError(errors.ErrInvalidRange, "start_time must be before end_time", nil)
	}
	return start, end, nil
}
