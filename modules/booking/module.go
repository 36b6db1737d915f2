package booking

import (
	"time"

	"github.com/labstack/echo/v4"

	"tutorhub-api/core/database"
	"tutorhub-api/core/middleware"
	availRepository "tutorhub-api/modules/availability/repository"
	"tutorhub-api/modules/booking/controller"
	"tutorhub-api/modules/booking/repository"
	"tutorhub-api/modules/booking/router"
	"tutorhub-api/modules/booking/service"
	notifService "tutorhub-api/modules/notification/service"
	tutorRepository "tutorhub-api/modules/tutor/repository"
)

// Init initializes the booking module and registers routes. The service
// is returned so the review gate and the background worker can read
// booking state and trigger the no-show sweep.
func Init(
	e *echo.Echo,
	db database.Database,
	availRepo availRepository.AvailabilityRepositoryInterface,
	tutorRepo tutorRepository.TutorRepositoryInterface,
	notifSvc notifService.NotificationServiceInterface,
	loc *time.Location,
	mw *middleware.Middleware,
) (service.BookingServiceInterface, repository.BookingRepositoryInterface) {
	repo := repository.NewBookingRepository(db)
	svc := service.NewBookingService(repo, availRepo, tutorRepo, notifSvc, loc)
	ctrl := controller.NewBookingController(svc)

	router.NewBookingRouter(ctrl).Setup(e, mw)

	return svc, repo
}
