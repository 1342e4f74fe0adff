package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withRunTime(id uint, ts string) Record {
	r := Record{ID: id, IsActive: true}
	if ts != "" {
		r.LatestRunTime = strPtr(ts)
	}
	return r
}

func TestSortByLatestRunTime(t *testing.T) {
	records := []Record{
		withRunTime(1, "2024-03-01 10:00:00"),
		withRunTime(2, ""),
		withRunTime(3, "2024-01-15 08:30:00"),
		withRunTime(4, "2024-03-01 10:00:00"),
		withRunTime(5, "2023-12-31 23:59:59"),
	}

	assert.Equal(t, []uint{2, 5, 3, 1, 4}, ids(SortByLatestRunTime(records, OrderAsc)))
	assert.Equal(t, []uint{1, 4, 3, 5, 2}, ids(SortByLatestRunTime(records, OrderDesc)))
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids(SortByLatestRunTime(records, OrderNone)))
}

func TestSortAfterFilter(t *testing.T) {
	records := []Record{
		withRunTime(1, "2024-02-01 00:00:00"),
		{ID: 2, IsActive: false, LatestRunTime: strPtr("2025-01-01 00:00:00")},
		withRunTime(3, "2024-01-01 00:00:00"),
	}

	visible := SortByLatestRunTime(Filter(records, Criteria{Status: ActiveOnly()}), OrderAsc)
	assert.Equal(t, []uint{3, 1}, ids(visible))
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, OrderAsc, ParseOrder("asc"))
	assert.Equal(t, OrderAsc, ParseOrder("ascend"))
	assert.Equal(t, OrderDesc, ParseOrder("DESC"))
	assert.Equal(t, OrderDesc, ParseOrder("descend"))
	assert.Equal(t, OrderNone, ParseOrder(""))
	assert.Equal(t, OrderNone, ParseOrder("sideways"))
	assert.Equal(t, "desc", OrderDesc.String())
}
