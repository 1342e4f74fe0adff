package test

import (
	"context"
	"sync"
	"time"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/executor"
)

// DefaultTestTimeout is the default timeout for test suites.
const DefaultTestTimeout = 30 * time.Second

// Option represents a configuration option for the test suite.
type Option func(*Suite)

// WithTimeout returns an option that sets the suite timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Suite) {
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.ctx, s.cancelFunc = context.WithTimeout(context.Background(), timeout)
	}
}

// WithExecutor returns an option that replaces the run executor used by the server.
func WithExecutor(exec executor.Executor) Option {
	return func(s *Suite) {
		s.Executor = exec
	}
}

// WithCleanupFunc returns an option that adds a cleanup function to be
// called when the suite is cleaned up.
func WithCleanupFunc(cleanup func()) Option {
	return func(s *Suite) {
		oldCleanup := s.cleanup
		s.cleanup = func() {
			if cleanup != nil {
				cleanup()
			}
			if oldCleanup != nil {
				oldCleanup()
			}
		}
	}
}

// StubExecutor returns the same result for every run and counts the runs
type StubExecutor struct {
	mu     sync.Mutex
	Result executor.Result
	runs   []models.Schedule
}

// NewStubExecutor creates a stub executor that reports the given status
func NewStubExecutor(status models.RunStatus, output string) *StubExecutor {
	return &StubExecutor{Result: executor.Result{Status: status, Output: output, Duration: 10 * time.Millisecond}}
}

// Run implements executor.Executor
func (e *StubExecutor) Run(_ context.Context, s models.Schedule) executor.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runs = append(e.runs, s)
	return e.Result
}

// Runs returns the number of runs executed so far
func (e *StubExecutor) Runs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.runs)
}
