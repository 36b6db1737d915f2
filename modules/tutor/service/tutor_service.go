package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"tutorhub-api/core/cache"
	"tutorhub-api/core/constants"
	"tutorhub-api/core/database"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/params"
	"tutorhub-api/core/utils"
	"tutorhub-api/modules/tutor/dto"
	"tutorhub-api/modules/tutor/entity"
	"tutorhub-api/modules/tutor/mapper"
	"tutorhub-api/modules/tutor/repository"
)

// TutorService owns tutor profiles, the public search surface and the
// admin-managed category catalog.
type TutorService struct {
	repo  repository.TutorRepositoryInterface
	cache *cache.Cache
}

// TutorServiceInterface defines the service contract.
type TutorServiceInterface interface {
	SearchTutors(ctx context.Context, filters entity.SearchFilters, qp params.QueryParams) (*dto.PaginatedTutorResponse, *errors.AppError)
	GetTutorBySlug(ctx context.Context, slugStr string) (*dto.TutorResponse, *errors.AppError)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.TutorResponse, *errors.AppError)
	UpsertMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpsertProfileRequest) (*dto.TutorResponse, *errors.AppError)
	AssignMyCategory(ctx context.Context, userID uuid.UUID, req *dto.AssignCategoryRequest) *errors.AppError
	RemoveMyCategory(ctx context.Context, userID uuid.UUID, categoryID uuid.UUID) *errors.AppError

	ListCategories(ctx context.Context) ([]dto.CategoryResponse, *errors.AppError)
	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, *errors.AppError)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, *errors.AppError)
	DeleteCategory(ctx context.Context, id uuid.UUID) *errors.AppError
}

func NewTutorService(repo repository.TutorRepositoryInterface, cache *cache.Cache) TutorServiceInterface {
	return &TutorService{repo: repo, cache: cache}
}

// ===================== Search and public reads =====================

// SearchTutors serves paginated, filtered search results. Pages are
// cached in redis for a short TTL; any profile or category mutation
// invalidates the whole prefix.
func (s *TutorService) SearchTutors(ctx context.Context, filters entity.SearchFilters, qp params.QueryParams) (*dto.PaginatedTutorResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	key := searchCacheKey(filters, qp)
	if s.cache != nil {
		if raw, ok := s.cache.GetJSON(ctx, key); ok {
			var cached dto.PaginatedTutorResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	page, err := s.repo.Search(ctx, filters, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to search tutors", err)
	}

	resp := mapper.ToPaginatedTutorResponse(page)
	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.cache.SetJSON(ctx, key, raw, constants.TutorSearchCacheTTL)
		}
	}

	return resp, nil
}

// GetTutorBySlug returns a public tutor page, categories included.
// Inactive profiles are hidden from the public surface.
func (s *TutorService) GetTutorBySlug(ctx context.Context, slugStr string) (*dto.TutorResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	profile, err := s.repo.GetProfileBySlug(ctx, slugStr)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load tutor", err)
	}
	if profile == nil || !profile.IsActive {
		return nil, errors.NewAppError(errors.ErrNotFound, "Tutor not found", nil)
	}

	categories, err := s.repo.ListCategoriesForTutor(ctx, profile.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load tutor categories", err)
	}

	return mapper.ToTutorResponse(profile, categories), nil
}

// ===================== Tutor-owned profile =====================

func (s *TutorService) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.TutorResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load profile", err)
	}
	if profile == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Profile not found", nil)
	}

	categories, err := s.repo.ListCategoriesForTutor(ctx, profile.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load profile categories", err)
	}

	return mapper.ToTutorResponse(profile, categories), nil
}

// UpsertMyProfile creates the calling tutor's profile on first call and
// updates it afterwards. The slug is derived from the headline once, at
// creation, so public URLs stay stable across edits.
func (s *TutorService) UpsertMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpsertProfileRequest) (*dto.TutorResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	existing, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load profile", err)
	}

	var profile *entity.TutorProfile
	if existing == nil {
		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		profile, err = s.repo.CreateProfile(ctx, &entity.TutorProfile{
			UserID:          userID,
			Slug:            s.newSlug(req.Headline),
			Headline:        req.Headline,
			Bio:             req.Bio,
			HourlyRateCents: req.HourlyRateCents,
			Currency:        currency,
			IsActive:        isActive,
		})
		if err != nil {
			if database.IsUniqueViolation(err) {
				return nil, errors.NewAppError(errors.ErrAlreadyExists, "Profile already exists", err)
			}
			return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create profile", err)
		}
		logger.Info("TutorService:UpsertMyProfile:Created", "user_id", userID, "slug", profile.Slug)
	} else {
		existing.Headline = req.Headline
		existing.Bio = req.Bio
		existing.HourlyRateCents = req.HourlyRateCents
		existing.Currency = currency
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}

		if err = s.repo.UpdateProfile(ctx, existing); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update profile", err)
		}
		profile = existing
		logger.Info("TutorService:UpsertMyProfile:Updated", "user_id", userID, "slug", profile.Slug)
	}

	s.invalidateSearch(ctx)

	categories, err := s.repo.ListCategoriesForTutor(ctx, profile.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load profile categories", err)
	}

	return mapper.ToTutorResponse(profile, categories), nil
}

func (s *TutorService) AssignMyCategory(ctx context.Context, userID uuid.UUID, req *dto.AssignCategoryRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	profile, appErr := s.requireProfile(ctx, userID)
	if appErr != nil {
		return appErr
	}

	categoryID := utils.ToUUID(req.CategoryID)
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to load category", err)
	}
	if category == nil {
		return errors.NewAppError(errors.ErrNotFound, "Category not found", nil)
	}

	if err = s.repo.AssignCategory(ctx, profile.ID, categoryID); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "Failed to assign category", err)
	}

	s.invalidateSearch(ctx)
	return nil
}

func (s *TutorService) RemoveMyCategory(ctx context.Context, userID uuid.UUID, categoryID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	profile, appErr := s.requireProfile(ctx, userID)
	if appErr != nil {
		return appErr
	}

	if err := s.repo.RemoveCategory(ctx, profile.ID, categoryID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to remove category", err)
	}

	s.invalidateSearch(ctx)
	return nil
}

// ===================== Category catalog =====================

func (s *TutorService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list categories", err)
	}

	responses := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *mapper.ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

func (s *TutorService) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	created, err := s.repo.CreateCategory(ctx, &entity.Category{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "Category already exists", err)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create category", err)
	}

	s.invalidateSearch(ctx)
	logger.Info("TutorService:CreateCategory:Success", "category_id", created.ID, "slug", created.Slug)
	return mapper.ToCategoryResponse(created), nil
}

func (s *TutorService) UpdateCategory(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load category", err)
	}
	if category == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Category not found", nil)
	}

	category.Name = req.Name
	category.Slug = slug.Make(req.Name)
	category.Description = req.Description

	if err = s.repo.UpdateCategory(ctx, category); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "Category name already in use", err)
		}
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update category", err)
	}

	s.invalidateSearch(ctx)
	return mapper.ToCategoryResponse(category), nil
}

func (s *TutorService) DeleteCategory(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to load category", err)
	}
	if category == nil {
		return errors.NewAppError(errors.ErrNotFound, "Category not found", nil)
	}

	if err = s.repo.DeleteCategory(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete category", err)
	}

	s.invalidateSearch(ctx)
	return nil
}

// ===================== Helpers =====================

func (s *TutorService) requireProfile(ctx context.Context, userID uuid.UUID) (*entity.TutorProfile, *errors.AppError) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load profile", err)
	}
	if profile == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Create a tutor profile first", nil)
	}
	return profile, nil
}

// newSlug appends a short random suffix so two tutors with the same
// headline never collide.
func (s *TutorService) newSlug(headline string) string {
	return slug.Make(headline) + "-" + utils.GenerateID()
}

func (s *TutorService) invalidateSearch(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidatePrefix(ctx, constants.RedisKeyTutorSearch)
	}
}

func searchCacheKey(f entity.SearchFilters, qp params.QueryParams) string {
	return fmt.Sprintf("%s%s|%s|%d|%d|%.2f|p%d|s%d",
		constants.RedisKeyTutorSearch,
		f.Query, f.CategorySlug, f.MinRateCents, f.MaxRateCents, f.MinRating,
		qp.PageNumber, qp.PageSize)
}
