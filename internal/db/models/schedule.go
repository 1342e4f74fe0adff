package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for schedule model
const (
	// ScheduleIsActiveField is the database field name for the activation flag
	ScheduleIsActiveField = "is_active"
	// ScheduleLatestStatusField is the database field name for the latest run status
	ScheduleLatestStatusField = "latest_status"
	// ScheduleLatestRunAtField is the database field name for the latest run time
	ScheduleLatestRunAtField = "latest_run_at"
)

// ScheduleType tells the executor how to run a schedule's command
type ScheduleType string

// Schedule type constants
const (
	// ScheduleTypeCommand runs the command through a local shell
	ScheduleTypeCommand ScheduleType = "command"
	// ScheduleTypeHTTP requests the command as a URL
	ScheduleTypeHTTP ScheduleType = "http"
)

// ScheduleTypes lists every supported schedule type
var ScheduleTypes = []ScheduleType{ScheduleTypeCommand, ScheduleTypeHTTP}

// ParseScheduleType validates a schedule type string
func ParseScheduleType(str string) (ScheduleType, error) {
	for _, t := range ScheduleTypes {
		if string(t) == str {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid schedule type: %s", str)
}

// Schedule is a job that runs on a cron trigger while it is active
type Schedule struct {
	gorm.Model
	Name    string       `json:"name" gorm:"not null;uniqueIndex"`
	Type    ScheduleType `json:"type" gorm:"not null;index"`
	Command string       `json:"command" gorm:"type:text;not null"`
	Trigger string       `json:"trigger" gorm:"not null"`
	// no default tag: gorm would replace an explicit false on create
	IsActive bool   `json:"is_active" gorm:"not null;index"`
	Desc     string `json:"desc" gorm:"type:text"`

	// Set only by scheduled runs, never by manual ones.
	LatestStatus *RunStatus `json:"latest_status,omitempty"`
	LatestRunAt  *time.Time `json:"latest_run_at,omitempty"`
}

// HasRun reports whether the schedule has completed at least one scheduled run
func (s *Schedule) HasRun() bool {
	return s.LatestStatus != nil && s.LatestRunAt != nil
}
