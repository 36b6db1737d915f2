package tutor

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/cache"
	"tutorhub-api/core/database"
	"tutorhub-api/core/middleware"
	"tutorhub-api/modules/tutor/controller"
	"tutorhub-api/modules/tutor/repository"
	"tutorhub-api/modules/tutor/router"
	"tutorhub-api/modules/tutor/service"
)

// Init initializes the tutor module and registers routes. The repository
// is returned so the booking and review modules can resolve profiles and
// fold in ratings.
func Init(e *echo.Echo, db database.Database, c *cache.Cache, mw *middleware.Middleware) repository.TutorRepositoryInterface {
	repo := repository.NewTutorRepository(db)
	svc := service.NewTutorService(repo, c)
	ctrl := controller.NewTutorController(svc)

	router.NewTutorRouter(ctrl).Setup(e, mw)

	return repo
}
