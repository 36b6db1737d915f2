package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/controller"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/params"
	"tutorhub-api/core/utils"
	"tutorhub-api/core/validation"
	"tutorhub-api/modules/review/dto"
	"tutorhub-api/modules/review/service"
)

// ReviewController handles review HTTP requests.
type ReviewController struct {
	controller.BaseController
	ReviewService service.ReviewServiceInterface
}

func NewReviewController(svc service.ReviewServiceInterface) *ReviewController {
	return &ReviewController{
		BaseController: controller.NewBaseController(),
		ReviewService:  svc,
	}
}

func (c *ReviewController) actorFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// CreateReview handles POST /reviews
func (c *ReviewController) CreateReview(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.ReviewService.CreateReview(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Review created successfully")
}

// RespondToReview handles POST /reviews/:id/respond
func (c *ReviewController) RespondToReview(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	reviewID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid review ID")
	}

	var req dto.RespondToReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.ReviewService.RespondToReview(ctx.Request().Context(), claims.UserID, reviewID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Response saved")
}

// SetVisibility handles PATCH /reviews/:id/visibility (admin)
func (c *ReviewController) SetVisibility(ctx echo.Context) error {
	reviewID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid review ID")
	}

	var req dto.SetVisibilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.ReviewService.SetVisibility(ctx.Request().Context(), reviewID, *req.IsVisible)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Visibility updated")
}

// ListTutorReviews handles GET /public/tutors/:id/reviews
func (c *ReviewController) ListTutorReviews(ctx echo.Context) error {
	tutorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid tutor ID")
	}

	qp := params.NewQueryParams(ctx)
	result, appErr := c.ReviewService.ListTutorReviews(ctx.Request().Context(), tutorID, *qp)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
