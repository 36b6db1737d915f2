package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/database"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/params"
	"tutorhub-api/core/utils"
	availEntity "tutorhub-api/modules/availability/entity"
	availRepository "tutorhub-api/modules/availability/repository"
	"tutorhub-api/modules/booking/dto"
	"tutorhub-api/modules/booking/entity"
	"tutorhub-api/modules/booking/mapper"
	"tutorhub-api/modules/booking/repository"
	notifEntity "tutorhub-api/modules/notification/entity"
	notifService "tutorhub-api/modules/notification/service"
	tutorRepository "tutorhub-api/modules/tutor/repository"
)

// BookingService owns booking creation and the lifecycle state machine.
type BookingService struct {
	repo     repository.BookingRepositoryInterface
	slots    availRepository.AvailabilityRepositoryInterface
	tutors   tutorRepository.TutorRepositoryInterface
	notifier notifService.NotificationServiceInterface
	loc      *time.Location
	now      func() time.Time
}

// BookingServiceInterface defines the service contract.
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, studentID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError)
	GetBooking(ctx context.Context, actorID uuid.UUID, role string, id uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	ListMyBookings(ctx context.Context, actorID uuid.UUID, role string, status string, qp params.QueryParams) (*dto.PaginatedBookingResponse, *errors.AppError)
	ConfirmBooking(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	CompleteBooking(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.CompleteBookingRequest) (*dto.BookingResponse, *errors.AppError)
	CancelBooking(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.CancelBookingRequest) (*dto.BookingResponse, *errors.AppError)
	FreeSlots(ctx context.Context, tutorID uuid.UUID, date string) (*dto.FreeSlotsResponse, *errors.AppError)
	SweepNoShows(ctx context.Context) (*dto.SweepResult, *errors.AppError)
}

func NewBookingService(
	repo repository.BookingRepositoryInterface,
	slots availRepository.AvailabilityRepositoryInterface,
	tutors tutorRepository.TutorRepositoryInterface,
	notifier notifService.NotificationServiceInterface,
	loc *time.Location,
) BookingServiceInterface {
	return &BookingService{
		repo:     repo,
		slots:    slots,
		tutors:   tutors,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
	}
}

// CreateBooking validates a student's request against availability,
// existing bookings and the clock, derives duration and price, and
// persists the booking in pending state.
func (s *BookingService) CreateBooking(ctx context.Context, studentID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	tutorID := utils.ToUUID(req.TutorID)
	if tutorID == studentID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Cannot book a session with yourself", nil)
	}

	sessionDate, err := utils.ParseDate(req.SessionDate, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	start, err := utils.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	end, err := utils.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	profile, err := s.tutors.GetProfileByUserID(ctx, tutorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load tutor", err)
	}
	if profile == nil || !profile.IsActive {
		return nil, errors.NewAppError(errors.ErrNotFound, "Tutor not found", nil)
	}

	if isPast(sessionDate, start, s.now().In(s.loc)) {
		return nil, errors.NewAppError(errors.ErrPastDate, "Requested session time has already passed", nil)
	}

	duration, price, appErr := Quote(profile.HourlyRateCents, start, end)
	if appErr != nil {
		return nil, appErr
	}

	day := availEntity.DayFromWeekday(sessionDate.Weekday())
	daySlots, err := s.slots.ListActiveByTutorDay(ctx, tutorID, day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load availability", err)
	}
	if !coveredByAvailability(daySlots, start, end) {
		return nil, errors.NewAppError(errors.ErrOutsideAvailability,
			"Requested window is not covered by the tutor's availability", nil)
	}

	booking := &entity.Booking{
		Reference:       utils.GenerateReference("BK"),
		StudentID:       studentID,
		TutorID:         tutorID,
		TutorProfileID:  profile.ID,
		Subject:         req.Subject,
		SessionDate:     sessionDate,
		StartMinute:     start,
		EndMinute:       end,
		DurationMinutes: duration,
		PriceCents:      price,
		Currency:        profile.Currency,
		Status:          entity.StatusPending,
		StudentNotes:    req.StudentNotes,
	}

	created, conflicted, err := s.repo.CreateWithConflictScan(ctx, booking)
	if conflicted {
		return nil, errors.NewAppError(errors.ErrTimeConflict,
			"The tutor already has a booking in this window", nil)
	}
	if err != nil {
		// The later committer of a race loses on the exclusion
		// constraint and gets the same answer as a scan hit.
		if database.IsExclusionViolation(err) {
			return nil, errors.NewAppError(errors.ErrTimeConflict,
				"This slot was just booked, please choose another", err)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create booking", err)
	}

	logger.Info("BookingService:CreateBooking:Success",
		"reference", created.Reference, "student_id", studentID, "tutor_id", tutorID,
		"session_date", req.SessionDate, "price_cents", price)

	s.notifier.Notify(ctx, tutorID, notifEntity.TypeBookingRequested,
		"New booking request",
		"A student requested a "+req.Subject+" session on "+req.SessionDate,
		map[string]any{"booking_id": created.ID.String(), "reference": created.Reference})

	return mapper.ToBookingResponse(created), nil
}

// GetBooking returns one booking to its participants or an admin.
func (s *BookingService) GetBooking(ctx context.Context, actorID uuid.UUID, role string, id uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	booking, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !booking.IsParticipant(actorID) && role != constants.RoleAdmin {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not a participant of this booking", nil)
	}

	return mapper.ToBookingResponse(booking), nil
}

// ListMyBookings pages through the caller's bookings, optionally filtered
// by status.
func (s *BookingService) ListMyBookings(ctx context.Context, actorID uuid.UUID, role string, status string, qp params.QueryParams) (*dto.PaginatedBookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	filter := entity.BookingStatus(status)
	if status != "" && !filter.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown booking status "+status, nil)
	}

	page, err := s.repo.ListByActor(ctx, actorID, role, filter, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load bookings", err)
	}

	return mapper.ToPaginatedBookingResponse(page), nil
}

// ConfirmBooking acknowledges a pending request. Tutor only.
func (s *BookingService) ConfirmBooking(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	booking, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if booking.TutorID != actorID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the tutor may confirm a booking", nil)
	}
	if !canFire(eventConfirm, booking.Status) {
		return nil, invalidTransition(booking.Status, "confirm")
	}

	updated, err := s.repo.Transition(ctx, id, transitionSources[eventConfirm], entity.StatusConfirmed, nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to confirm booking", err)
	}
	if updated == nil {
		// Lost a race against a concurrent transition.
		return nil, invalidTransition(booking.Status, "confirm")
	}

	logger.Info("BookingService:ConfirmBooking:Success", "reference", updated.Reference)
	s.notifier.Notify(ctx, updated.StudentID, notifEntity.TypeBookingConfirmed,
		"Booking confirmed",
		"Your tutor confirmed the session on "+utils.FormatDate(updated.SessionDate),
		map[string]any{"booking_id": updated.ID.String(), "reference": updated.Reference})

	return mapper.ToBookingResponse(updated), nil
}

// CompleteBooking marks the session held and unlocks the review gate.
// Tutor only; confirming first is allowed but not required.
func (s *BookingService) CompleteBooking(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.CompleteBookingRequest) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	booking, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if booking.TutorID != actorID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the tutor may complete a booking", nil)
	}
	if !canFire(eventComplete, booking.Status) {
		return nil, invalidTransition(booking.Status, "complete")
	}

	var notes *string
	if req != nil && req.TutorNotes != "" {
		notes = &req.TutorNotes
	}

	updated, err := s.repo.Transition(ctx, id, transitionSources[eventComplete], entity.StatusCompleted, notes)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to complete booking", err)
	}
	if updated == nil {
		return nil, invalidTransition(booking.Status, "complete")
	}

	logger.Info("BookingService:CompleteBooking:Success", "reference", updated.Reference)
	s.notifier.Notify(ctx, updated.StudentID, notifEntity.TypeBookingCompleted,
		"Session completed",
		"Your session was marked completed. You can now leave a review.",
		map[string]any{"booking_id": updated.ID.String(), "reference": updated.Reference})

	return mapper.ToBookingResponse(updated), nil
}

// CancelBooking transitions to cancelled and records who cancelled, when
// and why in the same atomic update. Either participant may cancel while
// the session has not yet started.
func (s *BookingService) CancelBooking(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.CancelBookingRequest) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	booking, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !booking.IsParticipant(actorID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not a participant of this booking", nil)
	}
	if !canFire(eventCancel, booking.Status) {
		return nil, invalidTransition(booking.Status, "cancel")
	}
	if isPast(booking.SessionDate, booking.StartMinute, s.now().In(s.loc)) {
		return nil, errors.NewAppError(errors.ErrInvalidTransition,
			"Cannot cancel a session that has already started", nil)
	}

	var reason *string
	if req != nil && req.Reason != "" {
		reason = &req.Reason
	}

	updated, err := s.repo.Cancel(ctx, id, transitionSources[eventCancel], actorID, reason)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to cancel booking", err)
	}
	if updated == nil {
		return nil, invalidTransition(booking.Status, "cancel")
	}

	logger.Info("BookingService:CancelBooking:Success",
		"reference", updated.Reference, "cancelled_by", actorID)

	other := updated.TutorID
	if actorID == updated.TutorID {
		other = updated.StudentID
	}
	s.notifier.Notify(ctx, other, notifEntity.TypeBookingCancelled,
		"Booking cancelled",
		"The session on "+utils.FormatDate(updated.SessionDate)+" was cancelled",
		map[string]any{"booking_id": updated.ID.String(), "reference": updated.Reference})

	return mapper.ToBookingResponse(updated), nil
}

// FreeSlots computes the remaining bookable windows for a tutor on one
// date: active availability minus pending/confirmed bookings.
func (s *BookingService) FreeSlots(ctx context.Context, tutorID uuid.UUID, date string) (*dto.FreeSlotsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	sessionDate, err := utils.ParseDate(date, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	day := availEntity.DayFromWeekday(sessionDate.Weekday())
	daySlots, err := s.slots.ListActiveByTutorDay(ctx, tutorID, day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load availability", err)
	}

	booked, err := s.repo.ListActiveByTutorDate(ctx, tutorID, sessionDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load bookings", err)
	}

	return &dto.FreeSlotsResponse{
		TutorID:     tutorID.String(),
		SessionDate: date,
		DayOfWeek:   string(day),
		Windows:     subtractBooked(daySlots, booked),
	}, nil
}

// SweepNoShows marks every overdue pending or confirmed booking as
// no_show. Invoked by the background worker on a schedule and by admins
// on demand.
func (s *BookingService) SweepNoShows(ctx context.Context) (*dto.SweepResult, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	nowMinute := now.Hour()*60 + now.Minute()

	swept, err := s.repo.SweepNoShows(ctx, today, nowMinute)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to sweep no-shows", err)
	}

	result := &dto.SweepResult{Swept: len(swept)}
	for i := range swept {
		b := &swept[i]
		result.References = append(result.References, b.Reference)
		data := map[string]any{"booking_id": b.ID.String(), "reference": b.Reference}
		s.notifier.Notify(ctx, b.StudentID, notifEntity.TypeBookingNoShow,
			"Session marked as no-show",
			"The session on "+utils.FormatDate(b.SessionDate)+" was marked as a no-show", data)
		s.notifier.Notify(ctx, b.TutorID, notifEntity.TypeBookingNoShow,
			"Session marked as no-show",
			"The session on "+utils.FormatDate(b.SessionDate)+" was marked as a no-show", data)
	}

	if result.Swept > 0 {
		logger.Info("BookingService:SweepNoShows:Success", "swept", result.Swept)
	}
	return result, nil
}

func (s *BookingService) load(ctx context.Context, id uuid.UUID) (*entity.Booking, *errors.AppError) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}
	return booking, nil
}

func invalidTransition(from entity.BookingStatus, event string) *errors.AppError {
	return errors.NewAppError(errors.ErrInvalidTransition,
		"Cannot "+event+" a booking in status "+string(from), nil)
}

// subtractBooked cuts each booked window out of each availability slot,
// keeping the leftover gaps in order.
func subtractBooked(slots []availEntity.AvailabilitySlot, booked []entity.Booking) []dto.FreeWindow {
	windows := []dto.FreeWindow{}
	for i := range slots {
		if !slots[i].IsActive {
			continue
		}
		cursor := slots[i].StartMinute
		for j := range booked {
			b := &booked[j]
			if b.EndMinute <= cursor || b.StartMinute >= slots[i].EndMinute {
				continue
			}
			if b.StartMinute > cursor {
				windows = append(windows, dto.FreeWindow{
					StartTime: utils.FormatTimeOfDay(cursor),
					EndTime:   utils.FormatTimeOfDay(b.StartMinute),
				})
			}
			if b.EndMinute > cursor {
				cursor = b.EndMinute
			}
		}
		if cursor < slots[i].EndMinute {
			windows = append(windows, dto.FreeWindow{
				StartTime: utils.FormatTimeOfDay(cursor),
				EndTime:   utils.FormatTimeOfDay(slots[i].EndMinute),
			})
		}
	}
	return windows
}
