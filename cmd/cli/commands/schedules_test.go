package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/schedule"
	"github.com/celestiaorg/cadence/internal/types"
	"github.com/celestiaorg/cadence/pkg/api/v1/client"
	clientmock "github.com/celestiaorg/cadence/pkg/api/v1/client/mock"
)

// runCLI executes the command tree against a mocked API client and returns the output
func runCLI(t *testing.T, m *clientmock.MockClient, args ...string) (string, error) {
	t.Helper()

	original := apiClient
	apiClient = m
	t.Cleanup(func() { apiClient = original })

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func boolPtr(b bool) *bool { return &b }

// expectRefresh registers the full list re-fetch that follows every state change
func expectRefresh(m *clientmock.MockClient, rows ...schedule.Record) {
	m.On("ListSchedules", mock.Anything, schedule.Criteria{}).
		Return(types.ListResponse[schedule.Record]{Rows: rows}, nil).Once()
}

// refreshed is the output shape of commands that change a schedule's state
type refreshed[T any] struct {
	Result    T                 `json:"result"`
	Schedules []schedule.Record `json:"schedules"`
}

func TestListSchedulesCmd(t *testing.T) {
	m := new(clientmock.MockClient)
	criteria := schedule.Criteria{Status: schedule.PendingOnly(), Name: "back"}
	resp := types.ListResponse[schedule.Record]{
		Rows: []schedule.Record{{ID: 1, Name: "backup", Type: "command", IsActive: true}},
		Pagination: types.PaginationResponse{
			Total: 1, Page: 1, Limit: 1,
		},
	}
	m.On("ListSchedules", mock.Anything, criteria).Return(resp, nil)

	out, err := runCLI(t, m, "schedules", "list", "--status", "pending", "--name", "back")
	require.NoError(t, err)

	var got types.ListResponse[schedule.Record]
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, resp, got)
	m.AssertExpectations(t)
}

func TestListSchedulesCmd_InvalidStatus(t *testing.T) {
	m := new(clientmock.MockClient)

	_, err := runCLI(t, m, "schedules", "list", "--status", "running")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status filter")
	m.AssertNotCalled(t, "ListSchedules", mock.Anything, mock.Anything)
}

func TestTableCmd(t *testing.T) {
	m := new(clientmock.MockClient)
	opts := client.TableOptions{
		Criteria:    schedule.Criteria{Status: schedule.StatusCode(2)},
		Order:       schedule.OrderDesc,
		Page:        2,
		PageSize:    20,
		Permissions: types.PermScheduleEdit,
	}
	m.On("GetScheduleTable", mock.Anything, opts).Return(types.ListResponse[types.TableRow]{Rows: []types.TableRow{}}, nil)

	_, err := runCLI(t, m, "schedules", "table", "--status", "2", "--order", "desc",
		"--page", "2", "--page-size", "20", "--permissions", types.PermScheduleEdit)
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestTableCmd_Defaults(t *testing.T) {
	m := new(clientmock.MockClient)
	opts := client.TableOptions{Page: 1, PageSize: types.DefaultPageSize}
	m.On("GetScheduleTable", mock.Anything, opts).Return(types.ListResponse[types.TableRow]{}, nil)

	_, err := runCLI(t, m, "schedules", "table")
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestTableCmd_InvalidOrder(t *testing.T) {
	m := new(clientmock.MockClient)

	_, err := runCLI(t, m, "schedules", "table", "--order", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order")
}

func TestCreateScheduleCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want types.ScheduleRequest
	}{
		{
			name: "inactive by default",
			args: []string{"--name", "backup", "--command", "echo hi", "--trigger", "*/5 * * * *"},
			want: types.ScheduleRequest{Name: "backup", Type: "command", Command: "echo hi", Trigger: "*/5 * * * *"},
		},
		{
			name: "active http",
			args: []string{"--name", "ping", "--type", "http", "--command", "http://localhost/health",
				"--trigger", "@hourly", "--desc", "probe", "--active"},
			want: types.ScheduleRequest{Name: "ping", Type: "http", Command: "http://localhost/health",
				Trigger: "@hourly", Desc: "probe", IsActive: boolPtr(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(clientmock.MockClient)
			created := models.Schedule{Name: tt.want.Name}
			m.On("CreateSchedule", mock.Anything, tt.want).Return(created, nil)

			out, err := runCLI(t, m, append([]string{"schedules", "create"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want.Name)
			m.AssertExpectations(t)
		})
	}
}

func TestCreateScheduleCmd_Validation(t *testing.T) {
	m := new(clientmock.MockClient)

	_, err := runCLI(t, m, "schedules", "create", "--name", "x", "--command", "true", "--trigger", "not a cron")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid trigger")

	_, err = runCLI(t, m, "schedules", "create", "--name", "x", "--command", "true")
	require.Error(t, err)

	m.AssertNotCalled(t, "CreateSchedule", mock.Anything, mock.Anything)
}

func TestUpdateScheduleCmd_KeepsUnsetFields(t *testing.T) {
	m := new(clientmock.MockClient)
	current := models.Schedule{
		Name: "backup", Type: models.ScheduleTypeCommand, Command: "echo old",
		Trigger: "@daily", Desc: "nightly", IsActive: true,
	}
	current.ID = 7
	want := types.ScheduleRequest{Name: "backup", Type: "command", Command: "echo new", Trigger: "@daily", Desc: "nightly"}

	m.On("GetSchedule", mock.Anything, uint(7)).Return(current, nil)
	m.On("UpdateSchedule", mock.Anything, uint(7), want).Return(current, nil)

	_, err := runCLI(t, m, "schedules", "update", "--id", "7", "--command", "echo new")
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestSetActiveCmds(t *testing.T) {
	for _, tt := range []struct {
		use    string
		active bool
	}{
		{use: "activate", active: true},
		{use: "deactivate", active: false},
	} {
		t.Run(tt.use, func(t *testing.T) {
			m := new(clientmock.MockClient)
			m.On("SetScheduleActive", mock.Anything, uint(3), tt.active).
				Return(types.ToggleResponse{ID: 3, IsActive: tt.active}, nil)
			expectRefresh(m, schedule.Record{ID: 3, Name: "toggle", IsActive: tt.active})

			out, err := runCLI(t, m, "schedules", tt.use, "--id", "3")
			require.NoError(t, err)

			var got refreshed[types.ToggleResponse]
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.active, got.Result.IsActive)
			require.Len(t, got.Schedules, 1)
			assert.Equal(t, tt.active, got.Schedules[0].IsActive)
			m.AssertExpectations(t)
		})
	}
}

func TestDeleteScheduleCmd(t *testing.T) {
	m := new(clientmock.MockClient)
	m.On("DeleteSchedule", mock.Anything, uint(4)).Return(nil)
	expectRefresh(m)

	out, err := runCLI(t, m, "schedules", "delete", "--id", "4")
	require.NoError(t, err)

	var got refreshed[deleteResult]
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, deleteResult{ID: 4, Deleted: true}, got.Result)
	assert.Empty(t, got.Schedules)

	_, err = runCLI(t, m, "schedules", "delete")
	require.Error(t, err)
	m.AssertExpectations(t)
}

func TestRunScheduleCmd(t *testing.T) {
	m := new(clientmock.MockClient)
	result := types.RunResult{ScheduleID: 5, Trigger: types.RunTriggerManual, Status: models.RunStatusSucceeded, Output: "ok\n"}
	m.On("RunSchedule", mock.Anything, uint(5)).Return(result, nil)
	expectRefresh(m, schedule.Record{ID: 5, Name: "backup"})

	out, err := runCLI(t, m, "schedules", "run", "--id", "5")
	require.NoError(t, err)

	var got refreshed[types.RunResult]
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, result, got.Result)
	assert.Len(t, got.Schedules, 1)
	m.AssertExpectations(t)
}

func TestRunScheduleCmd_Error(t *testing.T) {
	m := new(clientmock.MockClient)
	m.On("RunSchedule", mock.Anything, uint(5)).Return(types.RunResult{}, errors.New("schedule not found"))

	_, err := runCLI(t, m, "schedules", "run", "--id", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run schedule")
	m.AssertNotCalled(t, "ListSchedules", mock.Anything, mock.Anything)
}

func TestHistoryCmd(t *testing.T) {
	m := new(clientmock.MockClient)
	m.On("GetScheduleHistory", mock.Anything, uint(2), 3).Return(types.ListResponse[types.RunResult]{}, nil)
	m.On("GetLatestRun", mock.Anything, uint(2)).Return(types.RunResult{ScheduleID: 2}, nil)

	_, err := runCLI(t, m, "schedules", "history", "--id", "2", "--page", "3")
	require.NoError(t, err)

	_, err = runCLI(t, m, "schedules", "history", "--id", "2", "--latest")
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestRootCmd_ServerAddressPrecedence(t *testing.T) {
	original := apiClient
	t.Cleanup(func() { apiClient = original })

	t.Setenv("CADENCE_SERVER_ADDRESS", "http://env:9000")

	root := NewRootCmd()
	apiClient = nil
	require.NoError(t, root.PersistentPreRunE(root, nil))
	assert.Equal(t, "http://env:9000", serverAddress)
	require.NotNil(t, apiClient)

	root = NewRootCmd()
	require.NoError(t, root.PersistentFlags().Set(flagServerAddress, "http://flag:9001"))
	apiClient = nil
	require.NoError(t, root.PersistentPreRunE(root, nil))
	assert.Equal(t, "http://flag:9001", serverAddress)
}
