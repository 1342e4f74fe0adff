package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

type statusKind uint8

const (
	kindUnset statusKind = iota
	kindInactive
	kindActive
	kindPending
	kindCode
)

// Text forms of the composite status filters
const (
	FilterInactive = "inactive"
	FilterActive   = "active"
	FilterPending  = "pending"
)

// Numeric sentinels older console builds send for the composite filters
const (
	legacyInactive = -3
	legacyActive   = -2
	legacyPending  = -1
)

// StatusFilter selects records by display status.
// The zero value applies no status filtering and is distinct from StatusCode(0).
type StatusFilter struct {
	kind statusKind
	code int
}

// NoStatusFilter returns the filter that lets every record through
func NoStatusFilter() StatusFilter { return StatusFilter{} }

// InactiveOnly returns the filter matching disabled schedules
func InactiveOnly() StatusFilter { return StatusFilter{kind: kindInactive} }

// ActiveOnly returns the filter matching every enabled schedule
func ActiveOnly() StatusFilter { return StatusFilter{kind: kindActive} }

// PendingOnly returns the filter matching enabled schedules without a completed run
func PendingOnly() StatusFilter { return StatusFilter{kind: kindPending} }

// StatusCode returns the filter matching completed schedules whose latest run ended with code
func StatusCode(code int) StatusFilter { return StatusFilter{kind: kindCode, code: code} }

// IsSet reports whether the filter restricts by status at all
func (f StatusFilter) IsSet() bool {
	return f.kind != kindUnset
}

// Code returns the concrete status code and whether the filter is a code filter
func (f StatusFilter) Code() (int, bool) {
	return f.code, f.kind == kindCode
}

// Match reports whether a record with the given display status passes the filter
func (f StatusFilter) Match(ds DisplayStatus) bool {
	switch f.kind {
	case kindUnset:
		return true
	case kindInactive:
		return ds.Class == ClassInactive
	case kindActive:
		return ds.Class != ClassInactive
	case kindPending:
		return ds.Class == ClassPending
	case kindCode:
		return ds.Class == ClassCompleted && ds.Code == f.code
	default:
		return false
	}
}

func (f StatusFilter) String() string {
	switch f.kind {
	case kindInactive:
		return FilterInactive
	case kindActive:
		return FilterActive
	case kindPending:
		return FilterPending
	case kindCode:
		return strconv.Itoa(f.code)
	default:
		return ""
	}
}

// ParseStatusFilter parses the text form of a status filter.
// The empty string yields the unset filter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return NoStatusFilter(), nil
	case FilterInactive:
		return InactiveOnly(), nil
	case FilterActive:
		return ActiveOnly(), nil
	case FilterPending:
		return PendingOnly(), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return StatusFilter{}, fmt.Errorf("invalid status filter %q", s)
	}
	switch {
	case n == legacyInactive:
		return InactiveOnly(), nil
	case n == legacyActive:
		return ActiveOnly(), nil
	case n == legacyPending:
		return PendingOnly(), nil
	case n >= 0 && n < len(palette):
		return StatusCode(n), nil
	default:
		return StatusFilter{}, fmt.Errorf("invalid status filter %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (f StatusFilter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *StatusFilter) UnmarshalText(data []byte) error {
	parsed, err := ParseStatusFilter(string(data))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Criteria is the current filter selection applied to the record list
type Criteria struct {
	Status StatusFilter `json:"status"`
	Name   string       `json:"name,omitempty"`
	Type   string       `json:"type,omitempty"`
}

// IsEmpty reports whether the criteria select every record
func (c Criteria) IsEmpty() bool {
	return !c.Status.IsSet() && c.Name == "" && c.Type == ""
}
