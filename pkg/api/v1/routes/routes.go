// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/celestiaorg/cadence/internal/metrics"
	"github.com/celestiaorg/cadence/pkg/api/v1/handlers"
)

/*

To keep this file organized, routes should be organized in the following way:

1. Smallest scope first
2. For similar scopes, put the endpoints in alphabetical order
3. Order routes in GET, POST, PUT, PATCH, DELETE order.
	a. Within this ordering, param urls (ie /:id) should go last, otherwise fiber will interpret the route slug as that param.
	b. After param considerations, order alphabetically.
4. For clarity, naming should match the action (i.e. GetSchedule, DeleteSchedule)

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"
	// Metrics
	Metrics = "Metrics"

	// Schedule routes
	GetSchedules       = "GetSchedules"
	GetScheduleTable   = "GetScheduleTable"
	GetSchedule        = "GetSchedule"
	GetScheduleHistory = "GetScheduleHistory"
	GetLatestRun       = "GetLatestRun"
	CreateSchedule     = "CreateSchedule"
	RunSchedule        = "RunSchedule"
	UpdateSchedule     = "UpdateSchedule"
	SetScheduleActive  = "SetScheduleActive"
	DeleteSchedule     = "DeleteSchedule"
)

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in the order they are registered.
// For example, if we register GetSchedule before GetScheduleTable, /table will get interpreted as a schedule ID.
func RegisterRoutes(app *fiber.App, scheduleHandler *handlers.ScheduleHandler) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler())).Name(Metrics)

	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Schedule endpoints
	schedules := v1.Group("/schedules")
	schedules.Get("/", scheduleHandler.ListSchedules).Name(GetSchedules)
	schedules.Get("/table", scheduleHandler.GetTable).Name(GetScheduleTable)
	schedules.Get("/:id", scheduleHandler.GetSchedule).Name(GetSchedule)
	schedules.Get("/:id/history", scheduleHandler.GetHistory).Name(GetScheduleHistory)
	schedules.Get("/:id/history/latest", scheduleHandler.GetLatestRun).Name(GetLatestRun)
	schedules.Post("/", scheduleHandler.CreateSchedule).Name(CreateSchedule)
	schedules.Post("/:id/run", scheduleHandler.RunSchedule).Name(RunSchedule)
	schedules.Put("/:id", scheduleHandler.UpdateSchedule).Name(UpdateSchedule)
	schedules.Patch("/:id", scheduleHandler.SetActive).Name(SetScheduleActive)
	schedules.Delete("/:id", scheduleHandler.DeleteSchedule).Name(DeleteSchedule)
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		routeCache = make(map[string]string)

		// Create a mock app
		app := fiber.New()

		// Register routes with an empty handler
		RegisterRoutes(app, &handlers.ScheduleHandler{})

		// Extract routes from the app
		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				routeCache[route.Name] = route.Path
			}
		}
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	initRouteCache()

	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()
	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	// Replace parameters in the route
	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}

	// Remove trailing slash if it's a base endpoint with no parameters
	if strings.HasSuffix(route, "/") && len(route) > 1 && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	// Add query parameters if any
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// Health check route helper

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// MetricsURL returns the URL for the prometheus endpoint
func MetricsURL() string {
	return BuildURL(Metrics, nil, nil)
}

// Schedule route helpers

// GetSchedulesURL returns the URL for listing schedules
func GetSchedulesURL(queryParams url.Values) string {
	return BuildURL(GetSchedules, nil, queryParams)
}

// GetScheduleTableURL returns the URL for a page of the schedule table
func GetScheduleTableURL(queryParams url.Values) string {
	return BuildURL(GetScheduleTable, nil, queryParams)
}

// GetScheduleURL returns the URL for getting a schedule by ID
func GetScheduleURL(id string) string {
	return BuildURL(GetSchedule, map[string]string{"id": id}, nil)
}

// GetScheduleHistoryURL returns the URL for a schedule's run history
func GetScheduleHistoryURL(id string, queryParams url.Values) string {
	return BuildURL(GetScheduleHistory, map[string]string{"id": id}, queryParams)
}

// GetLatestRunURL returns the URL for a schedule's latest recorded run
func GetLatestRunURL(id string) string {
	return BuildURL(GetLatestRun, map[string]string{"id": id}, nil)
}

// CreateScheduleURL returns the URL for creating a schedule
func CreateScheduleURL() string {
	return BuildURL(CreateSchedule, nil, nil)
}

// RunScheduleURL returns the URL for running a schedule now
func RunScheduleURL(id string) string {
	return BuildURL(RunSchedule, map[string]string{"id": id}, nil)
}

// UpdateScheduleURL returns the URL for updating a schedule
func UpdateScheduleURL(id string) string {
	return BuildURL(UpdateSchedule, map[string]string{"id": id}, nil)
}

// SetScheduleActiveURL returns the URL for enabling or disabling a schedule
func SetScheduleActiveURL(id string) string {
	return BuildURL(SetScheduleActive, map[string]string{"id": id}, nil)
}

// DeleteScheduleURL returns the URL for deleting a schedule
func DeleteScheduleURL(id string) string {
	return BuildURL(DeleteSchedule, map[string]string{"id": id}, nil)
}
