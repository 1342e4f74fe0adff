package repos

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/celestiaorg/cadence/internal/db/models"
)

type HistoryRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func (s *HistoryRepositoryTestSuite) TestListBySchedule() {
	schedule := s.createTestSchedule("history", true)
	other := s.createTestSchedule("other", true)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		s.recordTestRun(schedule.ID, models.RunStatus(i%3), base.Add(time.Duration(i)*time.Hour))
	}
	s.recordTestRun(other.ID, models.RunStatusFailed, base)

	all, err := s.historyRepo.ListBySchedule(s.ctx, schedule.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 5)
	for i := 1; i < len(all); i++ {
		s.Require().True(all[i-1].RunAt.After(all[i].RunAt), "history must be newest first")
	}

	page, err := s.historyRepo.ListBySchedule(s.ctx, schedule.ID, &models.ListOptions{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Require().Equal(all[2].ID, page[0].ID)

	count, err := s.historyRepo.Count(s.ctx, schedule.ID)
	s.Require().NoError(err)
	s.Require().Equal(int64(5), count)
}

func (s *HistoryRepositoryTestSuite) TestLatest() {
	schedule := s.createTestSchedule("latest", true)

	_, err := s.historyRepo.Latest(s.ctx, schedule.ID)
	s.Require().True(errors.Is(err, gorm.ErrRecordNotFound))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.recordTestRun(schedule.ID, models.RunStatusSucceeded, base)
	last := s.recordTestRun(schedule.ID, models.RunStatusFailed, base.Add(time.Minute))

	latest, err := s.historyRepo.Latest(s.ctx, schedule.ID)
	s.Require().NoError(err)
	s.Require().Equal(last.RunID, latest.RunID)
	s.Require().Equal(models.RunStatusFailed, latest.Status)
}

func TestHistoryRepository(t *testing.T) {
	suite.Run(t, new(HistoryRepositoryTestSuite))
}
