package test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/db/repos"
	"github.com/celestiaorg/cadence/internal/events"
	"github.com/celestiaorg/cadence/internal/executor"
	"github.com/celestiaorg/cadence/internal/scheduler"
	"github.com/celestiaorg/cadence/internal/services"
	"github.com/celestiaorg/cadence/internal/types"
	"github.com/celestiaorg/cadence/pkg/api/v1/client"
)

// Suite encapsulates all components needed for integration testing.
// It provides a complete test setup with:
//   - File-based SQLite database
//   - Real API server
//   - Real API client
type Suite struct {
	t *testing.T // The testing.T instance for this suite

	// Server components
	App    *fiber.App
	Server *httptest.Server

	// Client components
	APIClient client.Client

	// Database components
	DB           *gorm.DB
	ScheduleRepo *repos.ScheduleRepository
	HistoryRepo  *repos.HistoryRepository

	// Service components
	Executor        executor.Executor
	ScheduleService *services.Schedule
	Scheduler       *scheduler.Scheduler
	Events          *events.Bus

	// Context management
	ctx        context.Context
	cancelFunc context.CancelFunc

	// Cleanup function
	cleanup func()
}

// NewSuite creates a new test suite with the given options.
// The suite must be cleaned up after use by calling Cleanup.
func NewSuite(t *testing.T, opts ...Option) *Suite {
	t.Helper()

	// Create suite with default timeout
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)

	suite := &Suite{
		t:          t,
		ctx:        ctx,
		cancelFunc: cancel,
		Executor:   executor.NewDispatcher(),
	}

	// Initialize cleanup function
	suite.cleanup = func() {
		if suite.cancelFunc != nil {
			suite.cancelFunc()
		}
	}

	// Apply options before anything is wired
	for _, opt := range opts {
		opt(suite)
	}

	// Setup database by default
	SetupTestDB(suite, nil)

	// Setup server by default
	SetupServer(suite)

	return suite
}

// Cleanup tears down the test suite, releasing all resources.
// This should be deferred immediately after creating the suite.
func (s *Suite) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// Context returns the suite's context, which is automatically
// canceled when the suite is cleaned up.
func (s *Suite) Context() context.Context {
	return s.ctx
}

// T returns the testing.T instance for this suite
func (s *Suite) T() *testing.T {
	return s.t
}

// Require returns a require.Assertions instance for this suite.
// This is a convenience method to avoid passing t around.
func (s *Suite) Require() *require.Assertions {
	return require.New(s.t)
}

// SuiteTrigger is the trigger of schedules created by the suite. It fires once a year
// so the running scheduler never interferes with a test.
const SuiteTrigger = "@yearly"

// CreateSchedule creates a schedule through the API and optionally enables it
func (s *Suite) CreateSchedule(name, command string, active bool) models.Schedule {
	req := types.ScheduleRequest{
		Name:     name,
		Type:     string(models.ScheduleTypeCommand),
		Command:  command,
		Trigger:  SuiteTrigger,
		IsActive: &active,
	}
	sched, err := s.APIClient.CreateSchedule(s.ctx, req)
	s.Require().NoError(err, "Failed to create schedule %s", name)
	return sched
}

// Retry retries a function until it succeeds or the number of retries is reached.
func (s *Suite) Retry(fn func() error, retries int, interval time.Duration) (err error) {
	for i := 0; i < retries; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		time.Sleep(interval)
	}
	return
}
