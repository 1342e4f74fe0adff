package models

import (
	"time"

	"gorm.io/gorm"
)

// HistoryRunAtField is the database field name for the history run timestamp
const HistoryRunAtField = "run_at"

// ScheduleHistory is the outcome of one scheduled run
type ScheduleHistory struct {
	gorm.Model
	ScheduleID uint      `json:"schedule_id" gorm:"not null;index"`
	RunID      string    `json:"run_id" gorm:"not null;uniqueIndex"`
	Status     RunStatus `json:"status" gorm:"not null"`
	Output     string    `json:"output" gorm:"type:text"`
	Duration   float64   `json:"duration"` // seconds
	RunAt      time.Time `json:"run_at" gorm:"not null;index"`
}
