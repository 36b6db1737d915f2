package router

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/middleware"
	"tutorhub-api/modules/booking/controller"
)

// BookingRouter handles booking routes.
type BookingRouter struct {
	Controller *controller.BookingController
}

func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{Controller: ctrl}
}

// Setup registers booking routes.
func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/tutors/:id/free-slots", r.Controller.GetFreeSlots)

	private := v1.Group("/private/bookings", mw.AuthMiddleware())
	private.POST("", r.Controller.CreateBooking, mw.RequireRole(constants.RoleStudent))
	private.GET("/my-bookings", r.Controller.ListMyBookings)
	private.GET("/:id", r.Controller.GetBooking)
	private.POST("/:id/confirm", r.Controller.ConfirmBooking)
	private.POST("/:id/complete", r.Controller.CompleteBooking)
	private.POST("/:id/cancel", r.Controller.CancelBooking)
	private.POST("/sweep-no-shows", r.Controller.SweepNoShows, mw.RequireRole(constants.RoleAdmin))
}
