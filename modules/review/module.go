package review

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/cache"
	"tutorhub-api/core/database"
	"tutorhub-api/core/middleware"
	bookingRepository "tutorhub-api/modules/booking/repository"
	notifService "tutorhub-api/modules/notification/service"
	"tutorhub-api/modules/review/controller"
	"tutorhub-api/modules/review/repository"
	"tutorhub-api/modules/review/router"
	"tutorhub-api/modules/review/service"
	tutorRepository "tutorhub-api/modules/tutor/repository"
)

// Init initializes the review module and registers routes.
func Init(
	e *echo.Echo,
	db database.Database,
	bookingRepo bookingRepository.BookingRepositoryInterface,
	tutorRepo tutorRepository.TutorRepositoryInterface,
	notifSvc notifService.NotificationServiceInterface,
	c *cache.Cache,
	mw *middleware.Middleware,
) {
	repo := repository.NewReviewRepository(db)
	svc := service.NewReviewService(repo, bookingRepo, tutorRepo, notifSvc, c)
	ctrl := controller.NewReviewController(svc)

	router.NewReviewRouter(ctrl).Setup(e, mw)
}
