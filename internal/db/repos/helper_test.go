package repos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db           *gorm.DB
	ctx          context.Context
	scheduleRepo *ScheduleRepository
	historyRepo  *HistoryRepository
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Every test gets its own named in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Schedule{}, &models.ScheduleHistory{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.scheduleRepo = NewScheduleRepository(s.db)
	s.historyRepo = NewHistoryRepository(s.db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) createTestSchedule(name string, active bool) *models.Schedule {
	schedule := &models.Schedule{
		Name:     name,
		Type:     models.ScheduleTypeCommand,
		Command:  "echo " + name,
		Trigger:  "*/5 * * * *",
		IsActive: active,
		Desc:     "test schedule " + name,
	}
	err := s.scheduleRepo.Create(s.ctx, schedule)
	s.Require().NoError(err)
	return schedule
}

func (s *DBRepositoryTestSuite) recordTestRun(scheduleID uint, status models.RunStatus, at time.Time) *models.ScheduleHistory {
	history := &models.ScheduleHistory{
		ScheduleID: scheduleID,
		RunID:      uuid.NewString(),
		Status:     status,
		Output:     "output of " + status.String(),
		Duration:   0.5,
		RunAt:      at,
	}
	err := s.scheduleRepo.RecordRun(s.ctx, history)
	s.Require().NoError(err)
	return history
}

// TestDBRepository runs the test suite for the DBRepository to verify no panic
func TestDBRepository(t *testing.T) {
	suite.Run(t, new(DBRepositoryTestSuite))
}
