package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/schedule"
)

func TestNewRecord(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	runAt := now.Add(-3 * time.Minute)
	failed := models.RunStatusFailed

	tests := []struct {
		name      string
		schedule  models.Schedule
		wantRun   bool
		wantClass schedule.Class
	}{
		{
			name:      "never ran",
			schedule:  models.Schedule{Model: gorm.Model{ID: 1}, Name: "backup", Type: models.ScheduleTypeCommand, IsActive: true},
			wantClass: schedule.ClassPending,
		},
		{
			name:      "disabled",
			schedule:  models.Schedule{Model: gorm.Model{ID: 2}, Name: "cleanup", Type: models.ScheduleTypeCommand},
			wantClass: schedule.ClassInactive,
		},
		{
			name: "ran and failed",
			schedule: models.Schedule{
				Model: gorm.Model{ID: 3}, Name: "ping", Type: models.ScheduleTypeHTTP, IsActive: true,
				LatestStatus: &failed, LatestRunAt: &runAt,
			},
			wantRun:   true,
			wantClass: schedule.ClassCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord(tt.schedule, now)
			assert.Equal(t, tt.schedule.ID, r.ID)
			assert.Equal(t, tt.schedule.Name, r.Name)
			assert.Equal(t, string(tt.schedule.Type), r.Type)
			assert.Equal(t, tt.wantRun, r.HasRun())
			assert.Equal(t, tt.wantClass, schedule.Classify(r).Class)

			if !tt.wantRun {
				assert.Nil(t, r.LatestStatus)
				assert.Nil(t, r.LatestStatusAlias)
				assert.Nil(t, r.LatestRunTime)
				assert.Nil(t, r.LatestRunTimeAlias)
				return
			}
			require.NotNil(t, r.LatestStatus)
			assert.Equal(t, 2, *r.LatestStatus)
			assert.Equal(t, "Failed", *r.LatestStatusAlias)
			assert.Equal(t, "2024-03-01 11:57:00", *r.LatestRunTime)
			assert.Equal(t, "3 minutes ago", *r.LatestRunTimeAlias)
		})
	}
}

func TestNewRecords_KeepsOrder(t *testing.T) {
	now := time.Now()
	records := NewRecords([]models.Schedule{
		{Model: gorm.Model{ID: 7}},
		{Model: gorm.Model{ID: 3}},
		{Model: gorm.Model{ID: 5}},
	}, now)

	require.Len(t, records, 3)
	assert.Equal(t, uint(7), records[0].ID)
	assert.Equal(t, uint(3), records[1].ID)
	assert.Equal(t, uint(5), records[2].ID)
	assert.Empty(t, NewRecords(nil, now))
}
