package dto

import (
	"time"

	"tutorhub-api/core/errors"
	"tutorhub-api/core/utils"
	"tutorhub-api/modules/availability/entity"
)

// ===================== Request DTOs =====================

// CreateSlotRequest adds one recurring weekly slot.
type CreateSlotRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string `json:"start_time" validate:"required"` // HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM
}

// BulkCreateSlotsRequest applies one time range across several days. Days are
// processed independently; the response reports success or failure per day.
type BulkCreateSlotsRequest struct {
	Days      []string `json:"days" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string   `json:"start_time" validate:"required"`
	EndTime   string   `json:"end_time" validate:"required"`
}

// ===================== Response DTOs =====================

type SlotResponse struct {
	ID        string    `json:"id"`
	TutorID   string    `json:"tutor_id"`
	DayOfWeek string    `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// WeeklyScheduleResponse maps every day of the week to its ordered slots.
type WeeklyScheduleResponse map[string][]SlotResponse

// BulkSlotError carries the per-day failure kind for a bulk add.
type BulkSlotError struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// BulkSlotResult is one day's outcome of a bulk add.
type BulkSlotResult struct {
	Day   string         `json:"day"`
	Slot  *SlotResponse  `json:"slot,omitempty"`
	Error *BulkSlotError `json:"error,omitempty"`
}

type BulkCreateSlotsResponse struct {
	Results []BulkSlotResult `json:"results"`
}

// ===================== Mapper Functions =====================

func ToSlotResponse(s *entity.AvailabilitySlot) *SlotResponse {
	return &SlotResponse{
		ID:        s.ID.String(),
		TutorID:   s.TutorID.String(),
		DayOfWeek: string(s.DayOfWeek),
		StartTime: utils.FormatTimeOfDay(s.StartMinute),
		EndTime:   utils.FormatTimeOfDay(s.EndMinute),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// ToWeeklySchedule groups slots by day, keeping every day present so clients
// can render a full week without special-casing empty days.
func ToWeeklySchedule(slots []entity.AvailabilitySlot) WeeklyScheduleResponse {
	schedule := make(WeeklyScheduleResponse, len(entity.AllDays))
	for _, day := range entity.AllDays {
		schedule[string(day)] = []SlotResponse{}
	}
	for i := range slots {
		day := string(slots[i].DayOfWeek)
		schedule[day] = append(schedule[day], *ToSlotResponse(&slots[i]))
	}
	return schedule
}
