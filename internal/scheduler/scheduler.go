// Package scheduler fires active schedules on their cron triggers
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/logger"
	"github.com/celestiaorg/cadence/internal/metrics"
	"github.com/celestiaorg/cadence/internal/types"
)

// Runner executes a schedule from its trigger
type Runner interface {
	RunScheduled(ctx context.Context, id uint) (*types.RunResult, error)
}

// Lister returns the schedules that should be registered
type Lister interface {
	ListActive(ctx context.Context) ([]models.Schedule, error)
}

// entry is the cron registration of one schedule
type entry struct {
	id      cron.EntryID
	trigger string
	name    string
}

// Scheduler keeps one cron entry per active schedule
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	runner  Runner
	lister  Lister
	runCtx  context.Context
	entries map[uint]entry
	running map[uint]bool
	started bool
}

// New creates a scheduler. Overlapping runs of the same schedule are skipped,
// also across reloads.
func New(runner Runner, lister Lister) *Scheduler {
	cl := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		runner:  runner,
		lister:  lister,
		runCtx:  context.Background(),
		entries: map[uint]entry{},
		running: map[uint]bool{},
	}
}

// Start registers the active schedules and starts firing them.
// Runs use ctx, so cancelling it aborts runs in flight.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.runCtx = ctx
	s.mu.Unlock()

	if err := s.Reload(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.cron.Start()
		s.started = true
	}
	logger.Infof("Scheduler started with %d schedules", len(s.entries))
	return nil
}

// Reload brings the registered entries in line with the current active schedules.
// Entries whose trigger is unchanged are kept. Schedules with an invalid trigger
// are logged and skipped.
func (s *Scheduler) Reload(ctx context.Context) error {
	schedules, err := s.lister.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active schedules: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	active := make(map[uint]struct{}, len(schedules))
	for _, sched := range schedules {
		active[sched.ID] = struct{}{}
		current, ok := s.entries[sched.ID]
		if ok && current.trigger == sched.Trigger {
			current.name = sched.Name
			s.entries[sched.ID] = current
			continue
		}
		if ok {
			s.cron.Remove(current.id)
			delete(s.entries, sched.ID)
		}

		id := sched.ID
		entryID, err := s.cron.AddFunc(sched.Trigger, func() { s.fire(id) })
		if err != nil {
			logger.WarnWithFields("skipping schedule with invalid trigger", map[string]interface{}{
				"schedule_id": id,
				"name":        sched.Name,
				"trigger":     sched.Trigger,
				"error":       err.Error(),
			})
			continue
		}
		s.entries[id] = entry{id: entryID, trigger: sched.Trigger, name: sched.Name}
	}

	for id, e := range s.entries {
		if _, ok := active[id]; !ok {
			s.cron.Remove(e.id)
			delete(s.entries, id)
		}
	}

	metrics.ActiveSchedules.Set(float64(len(s.entries)))
	logger.Debugf("Scheduler registered %d of %d active schedules", len(s.entries), len(schedules))
	return nil
}

// Stop stops firing schedules. The returned context is done once runs in flight finish.
func (s *Scheduler) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return s.cron.Stop()
}

// Registered reports whether a schedule currently has a cron entry
func (s *Scheduler) Registered(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

// Len returns the number of registered schedules
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Scheduler) fire(id uint) {
	s.mu.Lock()
	ctx := s.runCtx
	name := s.entries[id].name
	if s.running[id] {
		s.mu.Unlock()
		logger.InfoWithFields("skipping run, previous run still in progress", map[string]interface{}{
			"schedule_id": id,
			"name":        name,
		})
		metrics.ObserveSkip(metrics.SkipOverlap)
		return
	}
	s.running[id] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.running, id)
		s.mu.Unlock()
	}()

	res, err := s.runner.RunScheduled(ctx, id)
	switch {
	case err != nil:
		logger.ErrorWithFields("scheduled run failed", map[string]interface{}{
			"schedule_id": id,
			"name":        name,
			"error":       err.Error(),
		})
	case res == nil:
		logger.InfoWithFields("skipping run of inactive schedule", map[string]interface{}{
			"schedule_id": id,
			"name":        name,
		})
		metrics.ObserveSkip(metrics.SkipInactive)
	}
}

// cronLogger routes cron's own messages to the service logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.DebugWithFields("cron: "+msg, fields(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	f := fields(keysAndValues)
	f["error"] = err.Error()
	logger.ErrorWithFields("cron: "+msg, f)
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	f := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
