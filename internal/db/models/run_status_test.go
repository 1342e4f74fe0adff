package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      RunStatus
		stringValue string
		alias       string
		valid       bool
	}{
		{name: "succeeded", status: RunStatusSucceeded, stringValue: "succeeded", alias: "Succeeded", valid: true},
		{name: "abnormal", status: RunStatusAbnormal, stringValue: "abnormal", alias: "Abnormal", valid: true},
		{name: "failed", status: RunStatusFailed, stringValue: "failed", alias: "Failed", valid: true},
		{name: "out of range", status: RunStatus(7), stringValue: "unknown", alias: UnknownRunStatusAlias, valid: false},
		{name: "negative", status: RunStatus(-1), stringValue: "unknown", alias: UnknownRunStatusAlias, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stringValue, tt.status.String())
			assert.Equal(t, tt.alias, tt.status.Alias())
			assert.Equal(t, tt.valid, tt.status.Valid())

			if tt.valid {
				parsed, err := ParseRunStatus(tt.stringValue)
				assert.NoError(t, err)
				assert.Equal(t, tt.status, parsed)
			}
		})
	}

	_, err := ParseRunStatus("running")
	assert.Error(t, err)
}

func TestParseScheduleType(t *testing.T) {
	st, err := ParseScheduleType("command")
	assert.NoError(t, err)
	assert.Equal(t, ScheduleTypeCommand, st)

	st, err = ParseScheduleType("http")
	assert.NoError(t, err)
	assert.Equal(t, ScheduleTypeHTTP, st)

	_, err = ParseScheduleType("ssh")
	assert.Error(t, err)
}

func TestSchedule_HasRun(t *testing.T) {
	s := &Schedule{}
	assert.False(t, s.HasRun())

	status := RunStatusFailed
	s.LatestStatus = &status
	assert.False(t, s.HasRun())

	now := time.Now()
	s.LatestRunAt = &now
	assert.True(t, s.HasRun())
}
