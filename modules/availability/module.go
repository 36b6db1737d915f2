package availability

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/database"
	"tutorhub-api/core/middleware"
	"tutorhub-api/modules/availability/controller"
	"tutorhub-api/modules/availability/repository"
	"tutorhub-api/modules/availability/router"
	"tutorhub-api/modules/availability/service"
)

// Init initializes the availability module and registers routes. The
// repository is returned so the booking module can check slot coverage.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) repository.AvailabilityRepositoryInterface {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo)
	ctrl := controller.NewAvailabilityController(svc)

	router.NewAvailabilityRouter(ctrl).Setup(e, mw)

	return repo
}
