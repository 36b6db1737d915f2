package controller

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/controller"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/params"
	"tutorhub-api/core/utils"
	"tutorhub-api/core/validation"
	"tutorhub-api/modules/tutor/dto"
	"tutorhub-api/modules/tutor/entity"
	"tutorhub-api/modules/tutor/service"
)

// TutorController handles tutor profile and category HTTP requests.
type TutorController struct {
	controller.BaseController
	TutorService service.TutorServiceInterface
}

func NewTutorController(svc service.TutorServiceInterface) *TutorController {
	return &TutorController{
		BaseController: controller.NewBaseController(),
		TutorService:   svc,
	}
}

func (c *TutorController) actorFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// ===================== Public surface =====================

// SearchTutors handles GET /public/tutors
func (c *TutorController) SearchTutors(ctx echo.Context) error {
	qp := params.NewQueryParams(ctx)

	minRating, _ := strconv.ParseFloat(ctx.QueryParam("min_rating"), 64)
	filters := entity.SearchFilters{
		Query:        ctx.QueryParam("q"),
		CategorySlug: ctx.QueryParam("category"),
		MinRateCents: int64(utils.ToNumberWithDefault(ctx.QueryParam("min_rate_cents"), 0)),
		MaxRateCents: int64(utils.ToNumberWithDefault(ctx.QueryParam("max_rate_cents"), 0)),
		MinRating:    minRating,
	}

	result, appErr := c.TutorService.SearchTutors(ctx.Request().Context(), filters, *qp)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetTutorBySlug handles GET /public/tutors/:slug
func (c *TutorController) GetTutorBySlug(ctx echo.Context) error {
	result, appErr := c.TutorService.GetTutorBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListCategories handles GET /public/categories
func (c *TutorController) ListCategories(ctx echo.Context) error {
	result, appErr := c.TutorService.ListCategories(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ===================== Tutor-owned profile =====================

// GetMyProfile handles GET /tutors/me
func (c *TutorController) GetMyProfile(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.TutorService.GetMyProfile(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpsertMyProfile handles PUT /tutors/me
func (c *TutorController) UpsertMyProfile(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpsertProfileRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.TutorService.UpsertMyProfile(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile saved")
}

// AssignMyCategory handles POST /tutors/me/categories
func (c *TutorController) AssignMyCategory(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.AssignCategoryRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	if appErr := c.TutorService.AssignMyCategory(ctx.Request().Context(), claims.UserID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Category assigned")
}

// RemoveMyCategory handles DELETE /tutors/me/categories/:id
func (c *TutorController) RemoveMyCategory(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid category ID")
	}

	if appErr := c.TutorService.RemoveMyCategory(ctx.Request().Context(), claims.UserID, categoryID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Category removed")
}

// ===================== Admin category catalog =====================

// CreateCategory handles POST /categories
func (c *TutorController) CreateCategory(ctx echo.Context) error {
	var req dto.CategoryRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.TutorService.CreateCategory(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Category created successfully")
}

// UpdateCategory handles PUT /categories/:id
func (c *TutorController) UpdateCategory(ctx echo.Context) error {
	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid category ID")
	}

	var req dto.CategoryRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.TutorService.UpdateCategory(ctx.Request().Context(), categoryID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Category updated")
}

// DeleteCategory handles DELETE /categories/:id
func (c *TutorController) DeleteCategory(ctx echo.Context) error {
	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid category ID")
	}

	if appErr := c.TutorService.DeleteCategory(ctx.Request().Context(), categoryID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Category deleted")
}
