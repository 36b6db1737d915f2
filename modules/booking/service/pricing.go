package service

import (
	"tutorhub-api/core/errors"
)

// Quote derives session duration and price from the tutor's hourly rate
// and the requested window. Pure and deterministic; the server always
// recomputes, client-supplied estimates are advisory only.
//
// Price is computed in currency minor units with round-half-up:
// priceCents = round(rateCents * duration / 60).
func Quote(hourlyRateCents int64, startMinute, endMinute int) (durationMinutes int, priceCents int64, appErr *errors.AppError) {
	durationMinutes = endMinute - startMinute
	if durationMinutes <= 0 {
		return 0, 0, errors.NewAppError(errors.ErrInvalidRange,
			"end_time must be after start_time", nil)
	}

	total := hourlyRateCents * int64(durationMinutes)
	priceCents = (total + 30) / 60

	return durationMinutes, priceCents, nil
}
