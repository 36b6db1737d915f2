package router

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/middleware"
	"tutorhub-api/modules/tutor/controller"
)

// TutorRouter handles tutor profile and category routes.
type TutorRouter struct {
	Controller *controller.TutorController
}

func NewTutorRouter(ctrl *controller.TutorController) *TutorRouter {
	return &TutorRouter{Controller: ctrl}
}

// Setup registers tutor routes.
func (r *TutorRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/tutors", r.Controller.SearchTutors)
	public.GET("/tutors/:slug", r.Controller.GetTutorBySlug)
	public.GET("/categories", r.Controller.ListCategories)

	me := v1.Group("/private/tutors/me",
		mw.AuthMiddleware(), mw.RequireRole(constants.RoleTutor))
	me.GET("", r.Controller.GetMyProfile)
	me.PUT("", r.Controller.UpsertMyProfile)
	me.POST("/categories", r.Controller.AssignMyCategory)
	me.DELETE("/categories/:id", r.Controller.RemoveMyCategory)

	admin := v1.Group("/private/categories",
		mw.AuthMiddleware(), mw.RequireRole(constants.RoleAdmin))
	admin.POST("", r.Controller.CreateCategory)
	admin.PUT("/:id", r.Controller.UpdateCategory)
	admin.DELETE("/:id", r.Controller.DeleteCategory)
}
