package router

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/middleware"
	"tutorhub-api/modules/notification/controller"
)

// NotificationRouter handles notification routes.
type NotificationRouter struct {
	Controller *controller.NotificationController
}

func NewNotificationRouter(ctrl *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{Controller: ctrl}
}

// Setup registers notification routes.
func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	private := e.Group("/api/v1/private/notifications", mw.AuthMiddleware())
	private.GET("", r.Controller.GetMyNotifications)
	private.GET("/unread-count", r.Controller.CountUnread)
	private.PUT("/mark-read", r.Controller.MarkAsRead)
	private.PUT("/mark-all-read", r.Controller.MarkAllAsRead)
}
