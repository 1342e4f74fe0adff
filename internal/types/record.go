package types

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/schedule"
)

// RunTimeLayout is the raw timestamp format of run times. It sorts lexicographically.
const RunTimeLayout = "2006-01-02 15:04:05"

// FormatRunTime renders a run time in RunTimeLayout (UTC)
func FormatRunTime(t time.Time) string {
	return t.UTC().Format(RunTimeLayout)
}

// HumanizeRunTime renders a run time relative to now, e.g. "3 minutes ago"
func HumanizeRunTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// NewRecord converts a stored schedule into the record the console lists.
// The latest_* fields are all set or all absent.
func NewRecord(s models.Schedule, now time.Time) schedule.Record {
	r := schedule.Record{
		ID:       s.ID,
		Name:     s.Name,
		Type:     string(s.Type),
		IsActive: s.IsActive,
		Desc:     s.Desc,
	}
	if !s.HasRun() {
		return r
	}

	code := int(*s.LatestStatus)
	alias := s.LatestStatus.Alias()
	runTime := FormatRunTime(*s.LatestRunAt)
	runTimeAlias := HumanizeRunTime(*s.LatestRunAt, now)

	r.LatestStatus = &code
	r.LatestStatusAlias = &alias
	r.LatestRunTime = &runTime
	r.LatestRunTimeAlias = &runTimeAlias
	return r
}

// NewRecords converts stored schedules into records, keeping their order
func NewRecords(schedules []models.Schedule, now time.Time) []schedule.Record {
	records := make([]schedule.Record, 0, len(schedules))
	for _, s := range schedules {
		records = append(records, NewRecord(s, now))
	}
	return records
}
