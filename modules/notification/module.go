package notification

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/database"
	"tutorhub-api/core/middleware"
	"tutorhub-api/modules/notification/controller"
	"tutorhub-api/modules/notification/repository"
	"tutorhub-api/modules/notification/router"
	"tutorhub-api/modules/notification/service"
)

// Init initializes the notification module and registers routes. The
// service is returned so lifecycle transitions in other modules can emit
// notifications. The asynq client may be nil when the worker is disabled;
// notifications are then stored without a dispatch task.
func Init(e *echo.Echo, db database.Database, client *asynq.Client, mw *middleware.Middleware) service.NotificationServiceInterface {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, client)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return svc
}
