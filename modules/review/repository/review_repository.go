package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tutorhub-api/core/database"
	coreEntity "tutorhub-api/core/entity"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/params"
	"tutorhub-api/modules/review/entity"
)

// ReviewRepository handles reviews database operations.
type ReviewRepository struct {
	DB database.Database
}

func NewReviewRepository(db database.Database) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// ReviewRepositoryInterface defines the repository contract.
type ReviewRepositoryInterface interface {
	Create(ctx context.Context, r *entity.Review) (*entity.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error)
	ListVisibleByTutor(ctx context.Context, tutorID uuid.UUID, qp params.QueryParams) (*entity.PaginatedReviewEntity, error)
	SetResponse(ctx context.Context, id uuid.UUID, response string) (*entity.Review, error)
	SetVisibility(ctx context.Context, id uuid.UUID, visible bool) (*entity.Review, error)
}

const reviewColumns = `id, booking_id, student_id, tutor_id, rating, comment,
       response, responded_at, is_visible, created_at, updated_at`

// Create inserts the review. The unique index on booking_id makes a
// concurrent duplicate fail with a 23505, which the service maps onto
// the already-reviewed answer.
func (r *ReviewRepository) Create(ctx context.Context, rev *entity.Review) (*entity.Review, error) {
	query := `
		INSERT INTO reviews (booking_id, student_id, tutor_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reviewColumns

	var created entity.Review
	err := r.DB.GetContext(ctx, &created, query,
		rev.BookingID, rev.StudentID, rev.TutorID, rev.Rating, rev.Comment)
	if err != nil {
		if !database.IsUniqueViolation(err) {
			logger.Error("ReviewRepository:Create", err)
		}
		return nil, err
	}
	return &created, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.get(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
}

func (r *ReviewRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	return r.get(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE booking_id = $1`, bookingID)
}

func (r *ReviewRepository) get(ctx context.Context, query string, arg any) (*entity.Review, error) {
	var rev entity.Review
	err := r.DB.GetContext(ctx, &rev, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ReviewRepository:Get", err)
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) ListVisibleByTutor(ctx context.Context, tutorID uuid.UUID, qp params.QueryParams) (*entity.PaginatedReviewEntity, error) {
	baseQuery := `FROM reviews WHERE tutor_id = $1 AND is_visible = TRUE`

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) `+baseQuery, tutorID); err != nil {
		logger.Error("ReviewRepository:ListVisibleByTutor:Count", err)
		return nil, err
	}

	query := `
		SELECT ` + reviewColumns + ` ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var reviews []entity.Review
	if err := r.DB.SelectContext(ctx, &reviews, query, tutorID, qp.PageSize, qp.Offset()); err != nil {
		logger.Error("ReviewRepository:ListVisibleByTutor:Select", err)
		return nil, err
	}

	return &entity.PaginatedReviewEntity{
		Items:      reviews,
		TotalItems: totalItems,
		TotalPages: coreEntity.TotalPagesFor(totalItems, qp.PageSize),
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
	}, nil
}

// SetResponse writes the tutor's response only when none exists yet, so
// two concurrent respond calls cannot both win.
func (r *ReviewRepository) SetResponse(ctx context.Context, id uuid.UUID, response string) (*entity.Review, error) {
	query := `
		UPDATE reviews
		SET response = $2, responded_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND response IS NULL
		RETURNING ` + reviewColumns

	var rev entity.Review
	err := r.DB.GetContext(ctx, &rev, query, id, response)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ReviewRepository:SetResponse", err)
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) (*entity.Review, error) {
	query := `
		UPDATE reviews
		SET is_visible = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reviewColumns

	var rev entity.Review
	err := r.DB.GetContext(ctx, &rev, query, id, visible)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ReviewRepository:SetVisibility", err)
		return nil, err
	}
	return &rev, nil
}
