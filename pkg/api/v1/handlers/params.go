package handlers

import (
	"fmt"
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/cadence/internal/schedule"
	"github.com/celestiaorg/cadence/internal/types"
)

// SortLatestRunTime is the only sortable table column
const SortLatestRunTime = "latest_run_time"

// Query parameter names
const (
	QueryStatus   = "status"
	QueryName     = "name"
	QueryType     = "type"
	QuerySort     = "sort"
	QueryOrder    = "order"
	QueryPage     = "page"
	QueryPageSize = "page_size"
)

// parseCriteria reads the filter selection from the query string
func parseCriteria(c *fiber.Ctx) (schedule.Criteria, error) {
	status, err := schedule.ParseStatusFilter(c.Query(QueryStatus))
	if err != nil {
		return schedule.Criteria{}, fmt.Errorf("%s: %w", strings.ToLower(ErrMsgInvalidStatus), err)
	}
	return schedule.Criteria{
		Status: status,
		Name:   strings.TrimSpace(c.Query(QueryName)),
		Type:   strings.TrimSpace(c.Query(QueryType)),
	}, nil
}

// parseTableQuery reads the table selection, sort and page from the query string
func parseTableQuery(c *fiber.Ctx) (types.TableQuery, error) {
	criteria, err := parseCriteria(c)
	if err != nil {
		return types.TableQuery{}, err
	}

	order := schedule.OrderNone
	switch sort := c.Query(QuerySort); sort {
	case "":
	case SortLatestRunTime:
		order = schedule.ParseOrder(c.Query(QueryOrder))
	default:
		return types.TableQuery{}, fmt.Errorf("%s: %q", strings.ToLower(ErrMsgInvalidSort), sort)
	}

	page := c.QueryInt(QueryPage, 1)
	if page < 1 {
		return types.TableQuery{}, fmt.Errorf("%s", strings.ToLower(ErrMsgNegativePagination))
	}

	q := types.TableQuery{
		Criteria: criteria,
		Order:    order,
		Page:     page,
		PageSize: c.QueryInt(QueryPageSize, types.DefaultPageSize),
	}
	if err := q.Normalize(); err != nil {
		return types.TableQuery{}, err
	}
	return q, nil
}

// scheduleID reads and validates the :id route parameter
func scheduleID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fmt.Errorf("%s: %w", strings.ToLower(ErrMsgInvalidScheduleID), err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s", strings.ToLower(ErrMsgNegativeScheduleID))
	}
	return uint(id), nil
}
