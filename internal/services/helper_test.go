package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/db/repos"
	"github.com/celestiaorg/cadence/internal/events"
	"github.com/celestiaorg/cadence/internal/executor"
)

// TestSetup sets up an in-memory database and repositories for testing
type TestSetup struct {
	DB              *gorm.DB
	ScheduleRepo    *repos.ScheduleRepository
	HistoryRepo     *repos.HistoryRepository
	Executor        *MockExecutor
	Publisher       *recordingPublisher
	ScheduleService *Schedule
	ctx             context.Context
}

// NewTestSetup creates a new test setup with in-memory database
func NewTestSetup(t *testing.T) *TestSetup {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Schedule{}, &models.ScheduleHistory{})
	require.NoError(t, err, "Failed to run migrations")

	scheduleRepo := repos.NewScheduleRepository(db)
	historyRepo := repos.NewHistoryRepository(db)
	exec := new(MockExecutor)
	publisher := &recordingPublisher{}

	scheduleService := NewScheduleService(scheduleRepo, historyRepo, exec, time.Second)
	scheduleService.SetPublisher(publisher)

	return &TestSetup{
		DB:              db,
		ScheduleRepo:    scheduleRepo,
		HistoryRepo:     historyRepo,
		Executor:        exec,
		Publisher:       publisher,
		ScheduleService: scheduleService,
		ctx:             context.Background(),
	}
}

// CleanUp cleans up resources after test
func (ts *TestSetup) CleanUp() {
	sqlDB, err := ts.DB.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// createSchedule stores a schedule directly through the repository
func (ts *TestSetup) createSchedule(t *testing.T, name string, active bool) *models.Schedule {
	s := &models.Schedule{
		Name:     name,
		Type:     models.ScheduleTypeCommand,
		Command:  "echo " + name,
		Trigger:  "*/5 * * * *",
		IsActive: active,
	}
	require.NoError(t, ts.ScheduleRepo.Create(ts.ctx, s))
	return s
}

// recordRun stores a scheduled run outcome directly through the repository
func (ts *TestSetup) recordRun(t *testing.T, scheduleID uint, status models.RunStatus, at time.Time) {
	require.NoError(t, ts.ScheduleRepo.RecordRun(ts.ctx, &models.ScheduleHistory{
		ScheduleID: scheduleID,
		RunID:      uuid.NewString(),
		Status:     status,
		RunAt:      at,
	}))
}

// MockExecutor is a testify mock of executor.Executor
type MockExecutor struct {
	mock.Mock
}

// Run implements executor.Executor
func (m *MockExecutor) Run(ctx context.Context, s models.Schedule) executor.Result {
	args := m.Called(ctx, s)
	return args.Get(0).(executor.Result)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return true
}

func (p *recordingPublisher) types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
