package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/celestiaorg/cadence/config"
	"github.com/celestiaorg/cadence/internal/api/middleware"
	"github.com/celestiaorg/cadence/internal/db"
	"github.com/celestiaorg/cadence/internal/db/repos"
	"github.com/celestiaorg/cadence/internal/events"
	"github.com/celestiaorg/cadence/internal/executor"
	"github.com/celestiaorg/cadence/internal/logger"
	"github.com/celestiaorg/cadence/internal/scheduler"
	"github.com/celestiaorg/cadence/internal/services"
	"github.com/celestiaorg/cadence/internal/types"
	"github.com/celestiaorg/cadence/pkg/api/v1/handlers"
	"github.com/celestiaorg/cadence/pkg/api/v1/routes"
)

// shutdownTimeout bounds how long in-flight requests and runs may take on exit
const shutdownTimeout = 30 * time.Second

func main() {
	// A missing .env file is fine, the environment may already be set
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	logger.InitializeAndConfigure(cfg.LogLevel)
	if envErr != nil {
		logger.Debugf("No .env file loaded: %v", envErr)
	}

	database, err := db.New(db.Options{
		Host:       cfg.DB.Host,
		User:       cfg.DB.User,
		Password:   cfg.DB.Password,
		DBName:     cfg.DB.Name,
		Port:       cfg.DB.Port,
		SSLEnabled: &cfg.DB.SSLEnabled,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Create repositories
	scheduleRepo := repos.NewScheduleRepository(database)
	historyRepo := repos.NewHistoryRepository(database)

	// Create services
	scheduleService := services.NewScheduleService(scheduleRepo, historyRepo, executor.NewDispatcher(), cfg.RunTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cronRunner *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		cronRunner = scheduler.New(scheduleService, scheduleRepo)

		bus := events.NewBus()
		bus.Subscribe(func(ctx context.Context, _ events.Event) error {
			return cronRunner.Reload(ctx)
		}, events.ScheduleChanges...)
		bus.Start(ctx)
		scheduleService.SetPublisher(bus)

		if err := cronRunner.Start(ctx); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
	} else {
		logger.Warn("Scheduler disabled, schedules will only run on demand")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})
	app.Use(middleware.Logger(), middleware.Recover())

	// Create handlers and register routes
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	routes.RegisterRoutes(app, scheduleHandler)

	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatalf("Server stopped: %v", err)
		}
	}()

	sigTerm := make(chan os.Signal, 1)
	signal.Notify(sigTerm, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigTerm
	logger.Infof("Received %s, shutting down", sig)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Errorf("Failed to shut down server: %v", err)
	}

	if cronRunner != nil {
		select {
		case <-cronRunner.Stop().Done():
		case <-time.After(shutdownTimeout):
			logger.Warn("Timed out waiting for scheduled runs, aborting them")
		}
	}
	cancel()
	logger.Info("Shutdown complete")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	if code >= fiber.StatusInternalServerError {
		logger.Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(code).JSON(types.ErrServer(err.Error()))
	}
	return c.Status(code).JSON(types.ErrGeneral(err.Error()))
}
