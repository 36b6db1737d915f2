package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"tutorhub-api/core/cache"
	"tutorhub-api/core/config"
	"tutorhub-api/core/constants"
	"tutorhub-api/core/database"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/middleware"
	"tutorhub-api/core/validation"
	"tutorhub-api/modules/availability"
	"tutorhub-api/modules/booking"
	"tutorhub-api/modules/notification"
	notifRepository "tutorhub-api/modules/notification/repository"
	"tutorhub-api/modules/review"
	"tutorhub-api/modules/tutor"
	"tutorhub-api/worker"
)

// Run wires configuration, storage, cache, modules and the background
// worker, then serves until interrupted.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", cfg.Server.Timezone, err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	if cfg.Database.Migrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
		defer cancel()
		if err = db.Migrate(migrateCtx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	c, err := cache.New(cfg.Redis)
	if err != nil {
		// Search caching and token revocation degrade gracefully; the
		// background worker cannot run without redis.
		logger.Warn("Server:CacheUnavailable", "addr", cfg.Redis.Addr, "error", err)
		c = nil
	}

	var asynqClient *asynq.Client
	if c != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.NewRequestValidator()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware(c)

	tutorRepo := tutor.Init(e, db, c, mw)
	availRepo := availability.Init(e, db, mw)
	notifSvc := notification.Init(e, db, asynqClient, mw)
	bookingSvc, bookingRepo := booking.Init(e, db, availRepo, tutorRepo, notifSvc, loc, mw)
	review.Init(e, db, bookingRepo, tutorRepo, notifSvc, c, mw)

	var w *worker.Worker
	if cfg.Worker.Enabled && c != nil {
		notifRepo := notifRepository.NewNotificationRepository(db)
		w = worker.New(cfg.Redis, cfg.Worker, loc, bookingSvc, notifRepo)
		if err = w.Start(); err != nil {
			return fmt.Errorf("worker: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Listening", "addr", addr)
		if serveErr := e.Start(addr); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("Server:Start", serveErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:ShuttingDown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if w != nil {
		w.Shutdown()
	}
	if asynqClient != nil {
		_ = asynqClient.Close()
	}
	if c != nil {
		_ = c.Close()
	}
	return e.Shutdown(shutdownCtx)
}
