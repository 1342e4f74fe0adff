package types

import (
	"time"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// RunTrigger tells how a run was started
type RunTrigger string

// Run trigger constants
const (
	// RunTriggerScheduled is a run started by the cron trigger
	RunTriggerScheduled RunTrigger = "scheduled"
	// RunTriggerManual is a run started on demand; it leaves no history
	RunTriggerManual RunTrigger = "manual"
)

// RunResult is the outcome of executing a schedule once
type RunResult struct {
	RunID        string           `json:"run_id"`
	ScheduleID   uint             `json:"schedule_id"`
	Trigger      RunTrigger       `json:"trigger"`
	Status       models.RunStatus `json:"status"`
	StatusAlias  string           `json:"status_alias"`
	Output       string           `json:"output"`
	Duration     float64          `json:"duration"`
	RunTime      string           `json:"run_time"`
	RunTimeAlias string           `json:"run_time_alias"`
}

// NewHistoryItem converts a stored run into a RunResult
func NewHistoryItem(h models.ScheduleHistory, now time.Time) RunResult {
	return RunResult{
		RunID:        h.RunID,
		ScheduleID:   h.ScheduleID,
		Trigger:      RunTriggerScheduled,
		Status:       h.Status,
		StatusAlias:  h.Status.Alias(),
		Output:       h.Output,
		Duration:     h.Duration,
		RunTime:      FormatRunTime(h.RunAt),
		RunTimeAlias: HumanizeRunTime(h.RunAt, now),
	}
}
