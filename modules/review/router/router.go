package router

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/middleware"
	"tutorhub-api/modules/review/controller"
)

// ReviewRouter handles review routes.
type ReviewRouter struct {
	Controller *controller.ReviewController
}

func NewReviewRouter(ctrl *controller.ReviewController) *ReviewRouter {
	return &ReviewRouter{Controller: ctrl}
}

// Setup registers review routes.
func (r *ReviewRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/tutors/:id/reviews", r.Controller.ListTutorReviews)

	private := v1.Group("/private/reviews", mw.AuthMiddleware())
	private.POST("", r.Controller.CreateReview, mw.RequireRole(constants.RoleStudent))
	private.POST("/:id/respond", r.Controller.RespondToReview, mw.RequireRole(constants.RoleTutor))
	private.PATCH("/:id/visibility", r.Controller.SetVisibility, mw.RequireRole(constants.RoleAdmin))
}
