// Package schedule derives the visible schedule rows from the full record set.
//
// Everything in this package is pure: records and criteria are read-only snapshots and every
// function is safe to call concurrently.
package schedule

// Record is one scheduled job as seen by a console client.
type Record struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	IsActive           bool    `json:"is_active"`
	LatestStatus       *int    `json:"latest_status,omitempty"`
	LatestStatusAlias  *string `json:"latest_status_alias,omitempty"`
	LatestRunTime      *string `json:"latest_run_time,omitempty"`
	LatestRunTimeAlias *string `json:"latest_run_time_alias,omitempty"`
	Desc               string  `json:"desc"`
}

// HasRun reports whether the record carries a completed scheduled run.
func (r Record) HasRun() bool {
	return r.LatestStatusAlias != nil
}

// runTime returns the raw latest run timestamp, empty when the job never ran.
func (r Record) runTime() string {
	if r.LatestRunTime == nil {
		return ""
	}
	return *r.LatestRunTime
}
