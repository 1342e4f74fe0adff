package schedule

import (
	"sort"
	"strings"
)

// Matches reports whether a single record passes every active predicate of c.
func Matches(r Record, c Criteria) bool {
	if c.Status.IsSet() && !c.Status.Match(Classify(r)) {
		return false
	}
	if c.Name != "" && !containsFold(r.Name, c.Name) {
		return false
	}
	if c.Type != "" && !containsFold(r.Type, c.Type) {
		return false
	}
	return true
}

// Filter returns the records that match c, in input order.
// The input slice is never modified.
func Filter(records []Record, c Criteria) []Record {
	if c.IsEmpty() {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Order is the direction of the latest run time column sort
type Order int

// Sort orders
const (
	OrderNone Order = iota
	OrderAsc
	OrderDesc
)

// ParseOrder parses "asc"/"ascend" and "desc"/"descend"; anything else means no sorting
func ParseOrder(s string) Order {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascend":
		return OrderAsc
	case "desc", "descend":
		return OrderDesc
	default:
		return OrderNone
	}
}

func (o Order) String() string {
	switch o {
	case OrderAsc:
		return "asc"
	case OrderDesc:
		return "desc"
	default:
		return ""
	}
}

// SortByLatestRunTime returns a copy of records stably sorted on the raw latest run time.
// Records that never ran compare as the empty string.
func SortByLatestRunTime(records []Record, o Order) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	if o == OrderNone {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].runTime(), out[j].runTime()
		if o == OrderDesc {
			return a > b
		}
		return a < b
	})
	return out
}
