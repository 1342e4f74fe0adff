// Package client provides the API client for interacting with the Cadence API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/schedule"
	"github.com/celestiaorg/cadence/internal/types"
	"github.com/celestiaorg/cadence/pkg/api/v1/handlers"
	"github.com/celestiaorg/cadence/pkg/api/v1/routes"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Schedule Endpoints
	ListSchedules(ctx context.Context, criteria schedule.Criteria) (types.ListResponse[schedule.Record], error)
	GetScheduleTable(ctx context.Context, opts TableOptions) (types.ListResponse[types.TableRow], error)
	GetSchedule(ctx context.Context, id uint) (models.Schedule, error)
	GetScheduleHistory(ctx context.Context, id uint, page int) (types.ListResponse[types.RunResult], error)
	GetLatestRun(ctx context.Context, id uint) (types.RunResult, error)
	CreateSchedule(ctx context.Context, req types.ScheduleRequest) (models.Schedule, error)
	RunSchedule(ctx context.Context, id uint) (types.RunResult, error)
	UpdateSchedule(ctx context.Context, id uint, req types.ScheduleRequest) (models.Schedule, error)
	SetScheduleActive(ctx context.Context, id uint, active bool) (types.ToggleResponse, error)
	DeleteSchedule(ctx context.Context, id uint) error
}

var _ Client = &APIClient{}

// TableOptions selects a page of the schedule table
type TableOptions struct {
	Criteria schedule.Criteria
	Order    schedule.Order
	Page     int
	PageSize int
	// Permissions is sent as the permissions header when not empty
	Permissions string
}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q is not absolute", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	// Resolve the endpoint URL
	fullURL := c.baseURL + endpoint

	// Create a new agent based on the HTTP method
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	// Set common headers
	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	// Add body if provided
	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	// Execute the request
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		return newAPIError(statusCode, body)
	}

	// Decode the response body if a target is provided
	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// newAPIError turns an error response into a *fiber.Error, using the slug error text when present
func newAPIError(statusCode int, body []byte) error {
	var slug types.SlugResponse
	if err := json.Unmarshal(body, &slug); err == nil && slug.Error != "" {
		return &fiber.Error{Code: statusCode, Message: slug.Error}
	}
	return &fiber.Error{Code: statusCode, Message: string(body)}
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// Health Check

// HealthCheck checks the health of the API
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var response map[string]string
	if err := c.executeRequest(ctx, http.MethodGet, routes.HealthCheckURL(), nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Schedule methods

// criteriaQuery encodes the filter selection as query parameters
func criteriaQuery(criteria schedule.Criteria) url.Values {
	q := url.Values{}
	if criteria.Status.IsSet() {
		q.Set(handlers.QueryStatus, criteria.Status.String())
	}
	if criteria.Name != "" {
		q.Set(handlers.QueryName, criteria.Name)
	}
	if criteria.Type != "" {
		q.Set(handlers.QueryType, criteria.Type)
	}
	return q
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ListSchedules lists the schedules matching the criteria
func (c *APIClient) ListSchedules(ctx context.Context, criteria schedule.Criteria) (types.ListResponse[schedule.Record], error) {
	var response types.ListResponse[schedule.Record]
	endpoint := routes.GetSchedulesURL(criteriaQuery(criteria))
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	return response, err
}

// GetScheduleTable retrieves one page of the schedule table
func (c *APIClient) GetScheduleTable(ctx context.Context, opts TableOptions) (types.ListResponse[types.TableRow], error) {
	var response types.ListResponse[types.TableRow]

	q := criteriaQuery(opts.Criteria)
	if opts.Order != schedule.OrderNone {
		q.Set(handlers.QuerySort, handlers.SortLatestRunTime)
		q.Set(handlers.QueryOrder, opts.Order.String())
	}
	if opts.Page > 0 {
		q.Set(handlers.QueryPage, strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set(handlers.QueryPageSize, strconv.Itoa(opts.PageSize))
	}

	agent, err := c.createAgent(ctx, http.MethodGet, routes.GetScheduleTableURL(q), nil)
	if err != nil {
		return response, err
	}
	if opts.Permissions != "" {
		agent.Set(types.PermissionsHeader, opts.Permissions)
	}
	err = c.doRequest(agent, &response)
	return response, err
}

// GetSchedule retrieves a schedule by ID
func (c *APIClient) GetSchedule(ctx context.Context, id uint) (models.Schedule, error) {
	var response models.Schedule
	err := c.executeRequest(ctx, http.MethodGet, routes.GetScheduleURL(idString(id)), nil, &response)
	return response, err
}

// GetScheduleHistory retrieves a page of a schedule's recorded runs
func (c *APIClient) GetScheduleHistory(ctx context.Context, id uint, page int) (types.ListResponse[types.RunResult], error) {
	var response types.ListResponse[types.RunResult]
	var q url.Values
	if page > 0 {
		q = url.Values{handlers.QueryPage: []string{strconv.Itoa(page)}}
	}
	err := c.executeRequest(ctx, http.MethodGet, routes.GetScheduleHistoryURL(idString(id), q), nil, &response)
	return response, err
}

// GetLatestRun retrieves a schedule's latest recorded run
func (c *APIClient) GetLatestRun(ctx context.Context, id uint) (types.RunResult, error) {
	var response types.RunResult
	err := c.executeRequest(ctx, http.MethodGet, routes.GetLatestRunURL(idString(id)), nil, &response)
	return response, err
}

// CreateSchedule creates a new schedule
func (c *APIClient) CreateSchedule(ctx context.Context, req types.ScheduleRequest) (models.Schedule, error) {
	var response models.Schedule
	err := c.executeRequest(ctx, http.MethodPost, routes.CreateScheduleURL(), req, &response)
	return response, err
}

// RunSchedule runs a schedule once without recording the result
func (c *APIClient) RunSchedule(ctx context.Context, id uint) (types.RunResult, error) {
	var response types.RunResult
	err := c.executeRequest(ctx, http.MethodPost, routes.RunScheduleURL(idString(id)), nil, &response)
	return response, err
}

// UpdateSchedule replaces a schedule's definition
func (c *APIClient) UpdateSchedule(ctx context.Context, id uint, req types.ScheduleRequest) (models.Schedule, error) {
	var response models.Schedule
	err := c.executeRequest(ctx, http.MethodPut, routes.UpdateScheduleURL(idString(id)), req, &response)
	return response, err
}

// SetScheduleActive enables or disables a schedule
func (c *APIClient) SetScheduleActive(ctx context.Context, id uint, active bool) (types.ToggleResponse, error) {
	var response types.ToggleResponse
	req := types.ActiveRequest{IsActive: &active}
	err := c.executeRequest(ctx, http.MethodPatch, routes.SetScheduleActiveURL(idString(id)), req, &response)
	return response, err
}

// DeleteSchedule deletes a schedule and its history
func (c *APIClient) DeleteSchedule(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, routes.DeleteScheduleURL(idString(id)), nil, nil)
}
