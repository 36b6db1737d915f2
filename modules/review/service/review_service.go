package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"tutorhub-api/core/cache"
	"tutorhub-api/core/constants"
	"tutorhub-api/core/database"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/params"
	"tutorhub-api/core/utils"
	bookingEntity "tutorhub-api/modules/booking/entity"
	bookingRepository "tutorhub-api/modules/booking/repository"
	notifEntity "tutorhub-api/modules/notification/entity"
	notifService "tutorhub-api/modules/notification/service"
	"tutorhub-api/modules/review/dto"
	"tutorhub-api/modules/review/entity"
	"tutorhub-api/modules/review/mapper"
	"tutorhub-api/modules/review/repository"
	tutorRepository "tutorhub-api/modules/tutor/repository"
)

// ReviewService enforces the review gate: one review per completed
// booking, written by its student, with a single tutor response.
type ReviewService struct {
	repo     repository.ReviewRepositoryInterface
	bookings bookingRepository.BookingRepositoryInterface
	tutors   tutorRepository.TutorRepositoryInterface
	notifier notifService.NotificationServiceInterface
	cache    *cache.Cache
}

// ReviewServiceInterface defines the service contract.
type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, actorID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, *errors.AppError)
	RespondToReview(ctx context.Context, actorID uuid.UUID, reviewID uuid.UUID, req *dto.RespondToReviewRequest) (*dto.ReviewResponse, *errors.AppError)
	SetVisibility(ctx context.Context, reviewID uuid.UUID, visible bool) (*dto.ReviewResponse, *errors.AppError)
	ListTutorReviews(ctx context.Context, tutorID uuid.UUID, qp params.QueryParams) (*dto.PaginatedReviewResponse, *errors.AppError)
}

func NewReviewService(
	repo repository.ReviewRepositoryInterface,
	bookings bookingRepository.BookingRepositoryInterface,
	tutors tutorRepository.TutorRepositoryInterface,
	notifier notifService.NotificationServiceInterface,
	c *cache.Cache,
) ReviewServiceInterface {
	return &ReviewService{
		repo:     repo,
		bookings: bookings,
		tutors:   tutors,
		notifier: notifier,
		cache:    c,
	}
}

// CreateReview runs the gate and persists the review, then folds the
// rating into the tutor's aggregates.
func (s *ReviewService) CreateReview(ctx context.Context, actorID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.Rating < 1 || req.Rating > 5 {
		return nil, errors.NewAppError(errors.ErrInvalidRating, "Rating must be between 1 and 5", nil)
	}

	bookingID := utils.ToUUID(req.BookingID)
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}
	if booking.StudentID != actorID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the booking's student may review it", nil)
	}
	if booking.Status != bookingEntity.StatusCompleted {
		return nil, errors.NewAppError(errors.ErrNotCompleted, "Booking is not completed", nil)
	}

	existing, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to check existing review", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyReviewed, "This booking already has a review", nil)
	}

	created, err := s.repo.Create(ctx, &entity.Review{
		BookingID: bookingID,
		StudentID: booking.StudentID,
		TutorID:   booking.TutorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		// A concurrent duplicate loses on the booking_id unique index.
		if database.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyReviewed, "This booking already has a review", err)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create review", err)
	}

	if err = s.tutors.ApplyRating(ctx, booking.TutorID, req.Rating); err != nil {
		// The review exists; the aggregate catches up on the next one.
		logger.Warn("ReviewService:CreateReview:ApplyRatingFailed",
			"review_id", created.ID, "error", err)
	}
	if s.cache != nil {
		s.cache.InvalidatePrefix(ctx, constants.RedisKeyTutorSearch)
	}

	logger.Info("ReviewService:CreateReview:Success",
		"review_id", created.ID, "booking_id", bookingID, "rating", req.Rating)

	s.notifier.Notify(ctx, booking.TutorID, notifEntity.TypeReviewReceived,
		"New review received",
		"A student left a review for booking "+booking.Reference,
		map[string]any{"review_id": created.ID.String(), "booking_id": bookingID.String()})

	return mapper.ToReviewResponse(created), nil
}

// RespondToReview writes the tutor's one-time response. A second attempt
// is rejected rather than overwriting, to keep responses auditable.
func (s *ReviewService) RespondToReview(ctx context.Context, actorID uuid.UUID, reviewID uuid.UUID, req *dto.RespondToReviewRequest) (*dto.ReviewResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	response := strings.TrimSpace(req.Response)
	if response == "" {
		return nil, errors.NewAppError(errors.ErrEmptyResponse, "Response must not be blank", nil)
	}

	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load review", err)
	}
	if review == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Review not found", nil)
	}
	if review.TutorID != actorID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the reviewed tutor may respond", nil)
	}
	if review.Response != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyResponded, "This review already has a response", nil)
	}

	updated, err := s.repo.SetResponse(ctx, reviewID, response)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to save response", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrAlreadyResponded, "This review already has a response", nil)
	}

	logger.Info("ReviewService:RespondToReview:Success", "review_id", reviewID)

	s.notifier.Notify(ctx, updated.StudentID, notifEntity.TypeReviewResponse,
		"Tutor responded to your review",
		"Your tutor responded to your review",
		map[string]any{"review_id": updated.ID.String()})

	return mapper.ToReviewResponse(updated), nil
}

// SetVisibility is the administrative override that hides or restores a
// review without deleting it.
func (s *ReviewService) SetVisibility(ctx context.Context, reviewID uuid.UUID, visible bool) (*dto.ReviewResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	updated, err := s.repo.SetVisibility(ctx, reviewID, visible)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update review visibility", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Review not found", nil)
	}

	return mapper.ToReviewResponse(updated), nil
}

// ListTutorReviews returns a tutor's visible reviews for public pages.
func (s *ReviewService) ListTutorReviews(ctx context.Context, tutorID uuid.UUID, qp params.QueryParams) (*dto.PaginatedReviewResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.ListVisibleByTutor(ctx, tutorID, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load reviews", err)
	}

	return mapper.ToPaginatedReviewResponse(page), nil
}
