package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/controller"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/utils"
	"tutorhub-api/core/validation"
	"tutorhub-api/modules/availability/dto"
	"tutorhub-api/modules/availability/service"
)

// AvailabilityController handles availability HTTP requests.
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

func (c *AvailabilityController) actorFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// CreateSlot handles POST /availability
func (c *AvailabilityController) CreateSlot(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.AvailabilityService.AddSlot(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Slot created successfully")
}

// BulkCreateSlots handles POST /availability/bulk
func (c *AvailabilityController) BulkCreateSlots(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.BulkCreateSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.AvailabilityService.BulkAddSlots(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Bulk add processed")
}

// GetMySchedule handles GET /availability
func (c *AvailabilityController) GetMySchedule(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AvailabilityService.GetMySchedule(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetTutorSchedule handles GET /public/tutors/:id/availability
func (c *AvailabilityController) GetTutorSchedule(ctx echo.Context) error {
	tutorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid tutor ID")
	}

	result, appErr := c.AvailabilityService.GetPublicSchedule(ctx.Request().Context(), tutorID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ToggleSlot handles PATCH /availability/:id/toggle
func (c *AvailabilityController) ToggleSlot(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	slotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot ID")
	}

	result, appErr := c.AvailabilityService.ToggleSlot(ctx.Request().Context(), claims.UserID, slotID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Slot toggled")
}

// DeleteSlot handles DELETE /availability/:id
func (c *AvailabilityController) DeleteSlot(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	slotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot ID")
	}

	if appErr := c.AvailabilityService.DeleteSlot(ctx.Request().Context(), claims.UserID, slotID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Slot deleted")
}
