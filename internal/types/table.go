package types

import (
	"fmt"

	"github.com/celestiaorg/cadence/internal/schedule"
)

// DefaultPageSize is the number of table rows per page when none is requested
const DefaultPageSize = 10

// PageSizes are the page sizes the table accepts
var PageSizes = []int{10, 20, 50, 100}

// Tag is the colored status label of a row
type Tag struct {
	Text  string         `json:"text"`
	Color schedule.Color `json:"color"`
}

// RowActions tells which per-row actions are offered
type RowActions struct {
	// Detail needs a latest run to show
	Detail      bool   `json:"detail"`
	Edit        bool   `json:"edit"`
	Toggle      bool   `json:"toggle"`
	ToggleLabel string `json:"toggle_label"`
	Test        bool   `json:"test"`
	History     bool   `json:"history"`
	Delete      bool   `json:"delete"`
}

// TableRow is one visible row of the schedule table
type TableRow struct {
	// Series is the 1-based position of the row in the visible list
	Series int `json:"series"`
	schedule.Record
	Status  schedule.DisplayStatus `json:"status"`
	Tag     Tag                    `json:"tag"`
	Actions RowActions             `json:"actions"`
}

// ToggleLabel names the toggle action for a schedule in the given state
func ToggleLabel(isActive bool) string {
	if isActive {
		return "Deactivate"
	}
	return "Activate"
}

// NewTableRow builds the row for a record at the given 0-based position
func NewTableRow(index int, r schedule.Record, perms Permissions) TableRow {
	ds := schedule.Classify(r)

	return TableRow{
		Series: index + 1,
		Record: r,
		Status: ds,
		Tag:    Tag{Text: ds.Label(), Color: ds.Color},
		Actions: RowActions{
			Detail:      r.LatestRunTime != nil,
			Edit:        perms.Has(PermScheduleEdit),
			Toggle:      perms.Has(PermScheduleEdit),
			ToggleLabel: ToggleLabel(r.IsActive),
			Test:        true,
			History:     true,
			Delete:      perms.Has(PermScheduleDelete),
		},
	}
}

// TableQuery holds everything that selects the rows of one table page
type TableQuery struct {
	Criteria schedule.Criteria
	Order    schedule.Order
	Page     int
	PageSize int
}

// Normalize fills defaults and validates the paging fields
func (q *TableQuery) Normalize() error {
	if q.Page < 0 {
		return fmt.Errorf("page must be a positive number")
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	for _, size := range PageSizes {
		if q.PageSize == size {
			return nil
		}
	}
	return fmt.Errorf("page_size must be one of %v", PageSizes)
}
