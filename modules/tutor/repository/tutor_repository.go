package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tutorhub-api/core/database"
	coreEntity "tutorhub-api/core/entity"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/params"
	"tutorhub-api/modules/tutor/entity"
)

// TutorRepository handles tutor_profiles and categories database operations.
type TutorRepository struct {
	DB database.Database
}

func NewTutorRepository(db database.Database) *TutorRepository {
	return &TutorRepository{DB: db}
}

// TutorRepositoryInterface defines the repository contract.
type TutorRepositoryInterface interface {
	// Profiles
	CreateProfile(ctx context.Context, p *entity.TutorProfile) (*entity.TutorProfile, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*entity.TutorProfile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.TutorProfile, error)
	GetProfileBySlug(ctx context.Context, slug string) (*entity.TutorProfile, error)
	UpdateProfile(ctx context.Context, p *entity.TutorProfile) error
	Search(ctx context.Context, filters entity.SearchFilters, qp params.QueryParams) (*entity.PaginatedTutorEntity, error)
	ApplyRating(ctx context.Context, tutorUserID uuid.UUID, rating int) error

	// Categories
	CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	UpdateCategory(ctx context.Context, c *entity.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	AssignCategory(ctx context.Context, tutorProfileID, categoryID uuid.UUID) error
	RemoveCategory(ctx context.Context, tutorProfileID, categoryID uuid.UUID) error
	ListCategoriesForTutor(ctx context.Context, tutorProfileID uuid.UUID) ([]entity.Category, error)
}

const profileColumns = `id, user_id, slug, headline, bio, hourly_rate_cents, currency,
       is_active, rating_avg, rating_count, created_at, updated_at`

// ===================== Profiles =====================

func (r *TutorRepository) CreateProfile(ctx context.Context, p *entity.TutorProfile) (*entity.TutorProfile, error) {
	query := `
		INSERT INTO tutor_profiles (user_id, slug, headline, bio, hourly_rate_cents, currency, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + profileColumns

	var created entity.TutorProfile
	err := r.DB.GetContext(ctx, &created, query,
		p.UserID, p.Slug, p.Headline, p.Bio, p.HourlyRateCents, p.Currency, p.IsActive)
	if err != nil {
		logger.Error("TutorRepository:CreateProfile", err)
		return nil, err
	}

	return &created, nil
}

func (r *TutorRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*entity.TutorProfile, error) {
	return r.getProfile(ctx, `SELECT `+profileColumns+` FROM tutor_profiles WHERE id = $1`, id)
}

func (r *TutorRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.TutorProfile, error) {
	return r.getProfile(ctx, `SELECT `+profileColumns+` FROM tutor_profiles WHERE user_id = $1`, userID)
}

func (r *TutorRepository) GetProfileBySlug(ctx context.Context, slug string) (*entity.TutorProfile, error) {
	return r.getProfile(ctx, `SELECT `+profileColumns+` FROM tutor_profiles WHERE slug = $1`, slug)
}

func (r *TutorRepository) getProfile(ctx context.Context, query string, arg any) (*entity.TutorProfile, error) {
	var p entity.TutorProfile
	err := r.DB.GetContext(ctx, &p, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TutorRepository:GetProfile", err)
		return nil, err
	}
	return &p, nil
}

func (r *TutorRepository) UpdateProfile(ctx context.Context, p *entity.TutorProfile) error {
	query := `
		UPDATE tutor_profiles
		SET headline = $2, bio = $3, hourly_rate_cents = $4, currency = $5,
		    is_active = $6, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		p.ID, p.Headline, p.Bio, p.HourlyRateCents, p.Currency, p.IsActive)
	if err != nil {
		logger.Error("TutorRepository:UpdateProfile", err)
		return err
	}
	return nil
}

// Search filters active profiles by text, category, rate range and rating.
func (r *TutorRepository) Search(ctx context.Context, filters entity.SearchFilters, qp params.QueryParams) (*entity.PaginatedTutorEntity, error) {
	where := `WHERE tp.is_active = TRUE`
	args := []any{}
	n := 0

	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filters.Query != "" {
		p := arg("%" + filters.Query + "%")
		where += ` AND (tp.headline ILIKE ` + p + ` OR tp.bio ILIKE ` + p + `)`
	}
	if filters.CategorySlug != "" {
		where += ` AND EXISTS (
			SELECT 1 FROM tutor_categories tc
			JOIN categories c ON c.id = tc.category_id
			WHERE tc.tutor_id = tp.id AND c.slug = ` + arg(filters.CategorySlug) + `)`
	}
	if filters.MinRateCents > 0 {
		where += ` AND tp.hourly_rate_cents >= ` + arg(filters.MinRateCents)
	}
	if filters.MaxRateCents > 0 {
		where += ` AND tp.hourly_rate_cents <= ` + arg(filters.MaxRateCents)
	}
	if filters.MinRating > 0 {
		where += ` AND tp.rating_avg >= ` + arg(filters.MinRating)
	}

	var totalItems int
	countQuery := `SELECT COUNT(*) FROM tutor_profiles tp ` + where
	if err := r.DB.GetContext(ctx, &totalItems, countQuery, args...); err != nil {
		logger.Error("TutorRepository:Search:Count", err)
		return nil, err
	}

	query := `
		SELECT tp.id, tp.user_id, tp.slug, tp.headline, tp.bio, tp.hourly_rate_cents,
		       tp.currency, tp.is_active, tp.rating_avg, tp.rating_count,
		       tp.created_at, tp.updated_at
		FROM tutor_profiles tp ` + where + `
		ORDER BY tp.rating_avg DESC, tp.rating_count DESC, tp.created_at
		LIMIT ` + arg(qp.PageSize) + ` OFFSET ` + arg(qp.Offset())

	var profiles []entity.TutorProfile
	if err := r.DB.SelectContext(ctx, &profiles, query, args...); err != nil {
		logger.Error("TutorRepository:Search:Select", err)
		return nil, err
	}

	return &entity.PaginatedTutorEntity{
		Items:      profiles,
		TotalItems: totalItems,
		TotalPages: coreEntity.TotalPagesFor(totalItems, qp.PageSize),
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
	}, nil
}

// ApplyRating folds one new rating into the profile's denormalized
// aggregates.
func (r *TutorRepository) ApplyRating(ctx context.Context, tutorUserID uuid.UUID, rating int) error {
	query := `
		UPDATE tutor_profiles
		SET rating_avg = ROUND(((rating_avg * rating_count) + $2) / (rating_count + 1), 2),
		    rating_count = rating_count + 1,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	if err := r.DB.ExecContext(ctx, query, tutorUserID, rating); err != nil {
		logger.Error("TutorRepository:ApplyRating", err)
		return err
	}
	return nil
}

// ===================== Categories =====================

const categoryColumns = `id, name, slug, description, created_at, updated_at`

func (r *TutorRepository) CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	query := `
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING ` + categoryColumns

	var created entity.Category
	err := r.DB.GetContext(ctx, &created, query, c.Name, c.Slug, c.Description)
	if err != nil {
		if !database.IsUniqueViolation(err) {
			logger.Error("TutorRepository:CreateCategory", err)
		}
		return nil, err
	}

	return &created, nil
}

func (r *TutorRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`

	var categories []entity.Category
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		logger.Error("TutorRepository:ListCategories", err)
		return nil, err
	}
	return categories, nil
}

func (r *TutorRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	var c entity.Category
	err := r.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TutorRepository:GetCategoryByID", err)
		return nil, err
	}
	return &c, nil
}

func (r *TutorRepository) UpdateCategory(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, updated_at = NOW()
		WHERE id = $1
	`

	if err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Description); err != nil {
		if !database.IsUniqueViolation(err) {
			logger.Error("TutorRepository:UpdateCategory", err)
		}
		return err
	}
	return nil
}

func (r *TutorRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("TutorRepository:DeleteCategory", err)
		return err
	}
	return nil
}

func (r *TutorRepository) AssignCategory(ctx context.Context, tutorProfileID, categoryID uuid.UUID) error {
	query := `
		INSERT INTO tutor_categories (tutor_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT (tutor_id, category_id) DO NOTHING
	`

	if err := r.DB.ExecContext(ctx, query, tutorProfileID, categoryID); err != nil {
		logger.Error("TutorRepository:AssignCategory", err)
		return err
	}
	return nil
}

func (r *TutorRepository) RemoveCategory(ctx context.Context, tutorProfileID, categoryID uuid.UUID) error {
	query := `DELETE FROM tutor_categories WHERE tutor_id = $1 AND category_id = $2`
	if err := r.DB.ExecContext(ctx, query, tutorProfileID, categoryID); err != nil {
		logger.Error("TutorRepository:RemoveCategory", err)
		return err
	}
	return nil
}

func (r *TutorRepository) ListCategoriesForTutor(ctx context.Context, tutorProfileID uuid.UUID) ([]entity.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.created_at, c.updated_at
		FROM categories c
		JOIN tutor_categories tc ON tc.category_id = c.id
		WHERE tc.tutor_id = $1
		ORDER BY c.name
	`

	var categories []entity.Category
	if err := r.DB.SelectContext(ctx, &categories, query, tutorProfileID); err != nil {
		logger.Error("TutorRepository:ListCategoriesForTutor", err)
		return nil, err
	}
	return categories, nil
}
