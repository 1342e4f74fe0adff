package handlers

import (
	"errors"
	"fmt"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/celestiaorg/cadence/internal/schedule"
	"github.com/celestiaorg/cadence/internal/services"
	"github.com/celestiaorg/cadence/internal/types"
)

// ScheduleHandler handles HTTP requests for schedule operations
type ScheduleHandler struct {
	service *services.Schedule
}

// NewScheduleHandler creates a new schedule handler instance
func NewScheduleHandler(service *services.Schedule) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
	}
}

// ListSchedules returns every schedule matching the status, name and type filters
func (h *ScheduleHandler) ListSchedules(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	records, err := h.service.FilterRecords(c.Context(), criteria)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgScheduleListFailed, err)))
	}

	return c.JSON(types.ListResponse[schedule.Record]{
		Rows: records,
		Pagination: types.PaginationResponse{
			Total: len(records),
			Page:  1,
			Limit: len(records),
		},
	})
}

// GetTable returns one page of the schedule table as the console renders it
func (h *ScheduleHandler) GetTable(c *fiber.Ctx) error {
	q, err := parseTableQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	perms := types.ParsePermissions(c.Get(types.PermissionsHeader))
	page, err := h.service.Table(c.Context(), q, perms)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgScheduleListFailed, err)))
	}

	return c.JSON(page)
}

// GetSchedule returns details of a specific schedule
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	sched, err := h.service.GetSchedule(c.Context(), id)
	if err != nil {
		return respondWithError(c, err, ErrMsgScheduleGetFailed)
	}

	return c.JSON(sched)
}

// GetHistory returns the recorded runs of a schedule, newest first
func (h *ScheduleHandler) GetHistory(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	page := c.QueryInt(QueryPage, 1)
	if page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgNegativePagination))
	}
	opts := getPaginationOptions(page)

	runs, total, err := h.service.History(c.Context(), id, opts)
	if err != nil {
		return respondWithError(c, err, ErrMsgHistoryListFailed)
	}

	return c.JSON(types.ListResponse[types.RunResult]{
		Rows: runs,
		Pagination: types.PaginationResponse{
			Total:  int(total),
			Page:   page,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// GetLatestRun returns the most recent recorded run of a schedule
func (h *ScheduleHandler) GetLatestRun(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	run, err := h.service.LatestRun(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgHistoryNotFound))
	}
	if err != nil {
		return respondWithError(c, err, ErrMsgHistoryListFailed)
	}

	return c.JSON(run)
}

// CreateSchedule handles the request to create a schedule
func (h *ScheduleHandler) CreateSchedule(c *fiber.Ctx) error {
	var req types.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(fmt.Sprintf("%s: %v", ErrMsgInvalidReqBody, err)))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	sched, err := h.service.CreateSchedule(c.Context(), req)
	if err != nil {
		return respondWithError(c, err, ErrMsgScheduleCreateFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(sched)
}

// RunSchedule executes a schedule once and returns the outcome without recording it
func (h *ScheduleHandler) RunSchedule(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	res, err := h.service.RunNow(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err, ErrMsgScheduleRunFailed)
	}

	return c.JSON(res)
}

// UpdateSchedule handles the request to replace a schedule's definition
func (h *ScheduleHandler) UpdateSchedule(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	var req types.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(fmt.Sprintf("%s: %v", ErrMsgInvalidReqBody, err)))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	sched, err := h.service.UpdateSchedule(c.Context(), id, req)
	if err != nil {
		return respondWithError(c, err, ErrMsgScheduleUpdateFailed)
	}

	return c.JSON(sched)
}

// SetActive enables or disables a schedule
func (h *ScheduleHandler) SetActive(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	var req types.ActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(fmt.Sprintf("%s: %v", ErrMsgInvalidReqBody, err)))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	if err := h.service.SetActive(c.Context(), id, *req.IsActive); err != nil {
		return respondWithError(c, err, ErrMsgScheduleToggleFailed)
	}

	return c.JSON(types.ToggleResponse{ID: id, IsActive: *req.IsActive})
}

// DeleteSchedule removes a schedule and its history
func (h *ScheduleHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	if err := h.service.DeleteSchedule(c.Context(), id); err != nil {
		return respondWithError(c, err, ErrMsgScheduleDeleteFailed)
	}

	return c.JSON(types.Success(nil))
}

// respondWithError maps service errors to status codes
func respondWithError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgScheduleNotFound))
	case errors.Is(err, services.ErrScheduleExists):
		return c.Status(fiber.StatusConflict).JSON(types.ErrGeneral(ErrMsgScheduleExists))
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", msg, err)))
	}
}
