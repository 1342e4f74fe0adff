package test

import (
	"context"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/celestiaorg/cadence/internal/api/middleware"
	"github.com/celestiaorg/cadence/internal/events"
	"github.com/celestiaorg/cadence/internal/scheduler"
	"github.com/celestiaorg/cadence/internal/services"
	"github.com/celestiaorg/cadence/pkg/api/v1/client"
	"github.com/celestiaorg/cadence/pkg/api/v1/handlers"
	"github.com/celestiaorg/cadence/pkg/api/v1/routes"
)

// testClientTimeout is the timeout for test API client requests
const testClientTimeout = 5 * time.Second

// testRunTimeout bounds runs started through the test server
const testRunTimeout = 5 * time.Second

// SetupServer configures the suite with a real API server
func SetupServer(suite *Suite) {
	// Create Fiber app with default config
	suite.App = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	// Add logger
	suite.App.Use(middleware.Logger(), middleware.Recover())

	// Create services
	suite.ScheduleService = services.NewScheduleService(suite.ScheduleRepo, suite.HistoryRepo, suite.Executor, testRunTimeout)

	// Schedule changes reach the scheduler through the event bus, as in the server
	suite.Scheduler = scheduler.New(suite.ScheduleService, suite.ScheduleRepo)
	suite.Events = events.NewBus()
	suite.Events.Subscribe(func(ctx context.Context, _ events.Event) error {
		return suite.Scheduler.Reload(ctx)
	}, events.ScheduleChanges...)
	suite.Events.Start(suite.ctx)
	suite.ScheduleService.SetPublisher(suite.Events)
	suite.Require().NoError(suite.Scheduler.Start(suite.ctx), "Failed to start scheduler")

	// Create handlers and register routes
	scheduleHandler := handlers.NewScheduleHandler(suite.ScheduleService)
	routes.RegisterRoutes(suite.App, scheduleHandler)

	// Create test server using adaptor to convert Fiber app to http.Handler
	suite.Server = httptest.NewServer(adaptor.FiberApp(suite.App))

	// Create API client with test configuration
	apiClient, err := client.NewClient(&client.Options{
		BaseURL: suite.Server.URL,
		Timeout: testClientTimeout,
	})
	suite.Require().NoError(err, "Failed to create API client")
	suite.APIClient = apiClient

	// Update cleanup to close server
	originalCleanup := suite.cleanup
	suite.cleanup = func() {
		if suite.Server != nil {
			suite.Server.Close()
		}
		<-suite.Scheduler.Stop().Done()
		if originalCleanup != nil {
			originalCleanup()
		}
	}
}
