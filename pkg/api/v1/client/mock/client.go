// Package mock provides a testify mock of the API client
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/schedule"
	"github.com/celestiaorg/cadence/internal/types"
	"github.com/celestiaorg/cadence/pkg/api/v1/client"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	mock.Mock
}

var _ client.Client = &MockClient{}

// HealthCheck mocks client.Client
func (m *MockClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// ListSchedules mocks client.Client
func (m *MockClient) ListSchedules(ctx context.Context, criteria schedule.Criteria) (types.ListResponse[schedule.Record], error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(types.ListResponse[schedule.Record]), args.Error(1)
}

// GetScheduleTable mocks client.Client
func (m *MockClient) GetScheduleTable(ctx context.Context, opts client.TableOptions) (types.ListResponse[types.TableRow], error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(types.ListResponse[types.TableRow]), args.Error(1)
}

// GetSchedule mocks client.Client
func (m *MockClient) GetSchedule(ctx context.Context, id uint) (models.Schedule, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Schedule), args.Error(1)
}

// GetScheduleHistory mocks client.Client
func (m *MockClient) GetScheduleHistory(ctx context.Context, id uint, page int) (types.ListResponse[types.RunResult], error) {
	args := m.Called(ctx, id, page)
	return args.Get(0).(types.ListResponse[types.RunResult]), args.Error(1)
}

// GetLatestRun mocks client.Client
func (m *MockClient) GetLatestRun(ctx context.Context, id uint) (types.RunResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.RunResult), args.Error(1)
}

// CreateSchedule mocks client.Client
func (m *MockClient) CreateSchedule(ctx context.Context, req types.ScheduleRequest) (models.Schedule, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Schedule), args.Error(1)
}

// RunSchedule mocks client.Client
func (m *MockClient) RunSchedule(ctx context.Context, id uint) (types.RunResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.RunResult), args.Error(1)
}

// UpdateSchedule mocks client.Client
func (m *MockClient) UpdateSchedule(ctx context.Context, id uint, req types.ScheduleRequest) (models.Schedule, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Schedule), args.Error(1)
}

// SetScheduleActive mocks client.Client
func (m *MockClient) SetScheduleActive(ctx context.Context, id uint, active bool) (types.ToggleResponse, error) {
	args := m.Called(ctx, id, active)
	return args.Get(0).(types.ToggleResponse), args.Error(1)
}

// DeleteSchedule mocks client.Client
func (m *MockClient) DeleteSchedule(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
