package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"tutorhub-api/core/config"
	"tutorhub-api/core/constants"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/tasks"
	bookingService "tutorhub-api/modules/booking/service"
	notifRepository "tutorhub-api/modules/notification/repository"
)

// Worker runs the background side of the booking lifecycle: the periodic
// no-show sweep and notification dispatch.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	sweepCron string
}

func New(
	redisCfg config.RedisConfig,
	workerCfg config.WorkerConfig,
	loc *time.Location,
	bookingSvc bookingService.BookingServiceInterface,
	notifRepo notifRepository.NotificationRepositoryInterface,
) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: workerCfg.Concurrency,
		Queues:      map[string]int{constants.QueueDefault: 1},
		Logger:      asynqLogger{},
	})

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: loc,
		Logger:   asynqLogger{},
	})

	mux := asynq.NewServeMux()
	h := &handlers{bookings: bookingSvc, notifications: notifRepo}
	mux.HandleFunc(constants.TaskSweepNoShows, h.sweepNoShows)
	mux.HandleFunc(constants.TaskDispatchNotification, h.dispatchNotification)

	return &Worker{
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		sweepCron: workerCfg.NoShowSweep,
	}
}

// Start launches the task server and registers the periodic sweep.
func (w *Worker) Start() error {
	task, err := tasks.NewSweepNoShowsTask()
	if err != nil {
		return err
	}
	if _, err = w.scheduler.Register(w.sweepCron, task, asynq.Queue(constants.QueueDefault)); err != nil {
		return err
	}

	if err = w.server.Start(w.mux); err != nil {
		return err
	}
	if err = w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return err
	}

	logger.Info("Worker:Started", "sweep_cron", w.sweepCron)
	return nil
}

// Shutdown stops the scheduler and drains in-flight tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

type handlers struct {
	bookings      bookingService.BookingServiceInterface
	notifications notifRepository.NotificationRepositoryInterface
}

func (h *handlers) sweepNoShows(ctx context.Context, _ *asynq.Task) error {
	result, appErr := h.bookings.SweepNoShows(ctx)
	if appErr != nil {
		logger.Error("Worker:SweepNoShows", appErr)
		return appErr
	}
	if result.Swept > 0 {
		logger.Info("Worker:SweepNoShows:Done", "swept", result.Swept)
	}
	return nil
}

// dispatchNotification is where external channels (email, push) would
// hang off. Delivery itself is out of scope; the handler verifies the
// row still exists and records the hand-off.
func (h *handlers) dispatchNotification(ctx context.Context, t *asynq.Task) error {
	var payload tasks.DispatchNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("Worker:DispatchNotification:BadPayload", err)
		return err
	}

	n, err := h.notifications.GetByID(ctx, payload.NotificationID)
	if err != nil {
		return err
	}
	if n == nil {
		logger.Warn("Worker:DispatchNotification:Missing", "notification_id", payload.NotificationID)
		return nil
	}

	logger.Info("Worker:DispatchNotification:Delivered",
		"notification_id", n.ID, "user_id", n.UserID, "type", n.Type)
	return nil
}

// asynqLogger adapts asynq's logging onto the application logger.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("Worker:asynq", "args", args) }
func (asynqLogger) Info(args ...any)  { logger.Info("Worker:asynq", "args", args) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("Worker:asynq", "args", args) }
func (asynqLogger) Error(args ...any) { logger.Error("Worker:asynq", "args", args) }
func (asynqLogger) Fatal(args ...any) { logger.Error("Worker:asynq:fatal", "args", args) }
