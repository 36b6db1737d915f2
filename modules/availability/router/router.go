package router

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/middleware"
	"tutorhub-api/modules/availability/controller"
)

// AvailabilityRouter handles availability routes.
type AvailabilityRouter struct {
	Controller *controller.AvailabilityController
}

func NewAvailabilityRouter(ctrl *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{Controller: ctrl}
}

// Setup registers availability routes.
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/tutors/:id/availability", r.Controller.GetTutorSchedule)

	private := v1.Group("/private/availability",
		mw.AuthMiddleware(), mw.RequireRole(constants.RoleTutor))
	private.POST("", r.Controller.CreateSlot)
	private.POST("/bulk", r.Controller.BulkCreateSlots)
	private.GET("", r.Controller.GetMySchedule)
	private.PATCH("/:id/toggle", r.Controller.ToggleSlot)
	private.DELETE("/:id", r.Controller.DeleteSlot)
}
