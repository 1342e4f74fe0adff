// Package handlers provides HTTP request handling
package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody     = "Invalid request body"
	ErrMsgInvalidScheduleID  = "Invalid schedule id"
	ErrMsgNegativeScheduleID = "Schedule id must be positive"
	ErrMsgInvalidStatus      = "Invalid status filter"
	ErrMsgInvalidSort        = "Invalid sort field"
	ErrMsgInvalidPageSize    = "Invalid page size"
)

// Schedule error messages
const (
	ErrMsgScheduleNotFound     = "Schedule not found"
	ErrMsgScheduleExists       = "Schedule name already exists"
	ErrMsgScheduleListFailed   = "Failed to list schedules"
	ErrMsgScheduleGetFailed    = "Failed to get schedule"
	ErrMsgScheduleCreateFailed = "Failed to create schedule"
	ErrMsgScheduleUpdateFailed = "Failed to update schedule"
	ErrMsgScheduleToggleFailed = "Failed to toggle schedule"
	ErrMsgScheduleDeleteFailed = "Failed to delete schedule"
	ErrMsgScheduleRunFailed    = "Failed to run schedule"
	ErrMsgHistoryNotFound      = "Schedule has no recorded runs"
	ErrMsgHistoryListFailed    = "Failed to list schedule history"
)

// Pagination error messages
const (
	ErrMsgNegativePagination = "Page must be a positive number from 1"
)
