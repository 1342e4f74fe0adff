package types

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// ScheduleRequest is the body for creating or updating a schedule
type ScheduleRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Command  string `json:"command"`
	Trigger  string `json:"trigger"`
	Desc     string `json:"desc"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Validate validates the schedule request
func (r *ScheduleRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := models.ParseScheduleType(r.Type); err != nil {
		return err
	}
	if r.Command == "" {
		return fmt.Errorf("command is required")
	}
	return ValidateTrigger(r.Trigger)
}

// ValidateTrigger checks a cron trigger expression
func ValidateTrigger(trigger string) error {
	if trigger == "" {
		return fmt.Errorf("trigger is required")
	}
	if _, err := cron.ParseStandard(trigger); err != nil {
		return fmt.Errorf("invalid trigger %q: %w", trigger, err)
	}
	return nil
}

// Apply copies the request onto a schedule model.
// IsActive is only touched when the request carries it.
func (r *ScheduleRequest) Apply(s *models.Schedule) {
	s.Name = r.Name
	s.Type = models.ScheduleType(r.Type)
	s.Command = r.Command
	s.Trigger = r.Trigger
	s.Desc = r.Desc
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// ActiveRequest is the body for enabling or disabling a schedule
type ActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// Validate validates the active request
func (r *ActiveRequest) Validate() error {
	if r.IsActive == nil {
		return fmt.Errorf("is_active is required")
	}
	return nil
}
