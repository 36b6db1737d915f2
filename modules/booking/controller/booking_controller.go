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
	"tutorhub-api/modules/booking/dto"
	"tutorhub-api/modules/booking/service"
)

// BookingController handles booking lifecycle HTTP requests.
type BookingController struct {
	controller.BaseController
	BookingService service.BookingServiceInterface
}

func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: svc,
	}
}

func (c *BookingController) actorFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// CreateBooking handles POST /bookings
func (c *BookingController) CreateBooking(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.BookingService.CreateBooking(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Booking created successfully")
}

// GetBooking handles GET /bookings/:id
func (c *BookingController) GetBooking(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.GetBooking(ctx.Request().Context(), claims.UserID, claims.Role, bookingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListMyBookings handles GET /bookings/my-bookings
func (c *BookingController) ListMyBookings(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	qp := params.NewQueryParams(ctx)
	result, appErr := c.BookingService.ListMyBookings(ctx.Request().Context(),
		claims.UserID, claims.Role, ctx.QueryParam("status"), *qp)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ConfirmBooking handles POST /bookings/:id/confirm
func (c *BookingController) ConfirmBooking(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.ConfirmBooking(ctx.Request().Context(), claims.UserID, bookingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking confirmed")
}

// CompleteBooking handles POST /bookings/:id/complete
func (c *BookingController) CompleteBooking(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	var req dto.CompleteBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.BookingService.CompleteBooking(ctx.Request().Context(), claims.UserID, bookingID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking completed")
}

// CancelBooking handles POST /bookings/:id/cancel
func (c *BookingController) CancelBooking(ctx echo.Context) error {
	claims, err := c.actorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	var req dto.CancelBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ValidationErrorResponse(ctx, validation.FieldErrors(err))
	}

	result, appErr := c.BookingService.CancelBooking(ctx.Request().Context(), claims.UserID, bookingID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking cancelled")
}

// GetFreeSlots handles GET /public/tutors/:id/free-slots?date=YYYY-MM-DD
func (c *BookingController) GetFreeSlots(ctx echo.Context) error {
	tutorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid tutor ID")
	}

	date := ctx.QueryParam("date")
	if date == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Query parameter 'date' is required")
	}

	result, appErr := c.BookingService.FreeSlots(ctx.Request().Context(), tutorID, date)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// SweepNoShows handles POST /bookings/sweep-no-shows (admin)
func (c *BookingController) SweepNoShows(ctx echo.Context) error {
	result, appErr := c.BookingService.SweepNoShows(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Sweep finished")
}
