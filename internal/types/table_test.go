package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/celestiaorg/cadence/internal/schedule"
)

func TestNewTableRow(t *testing.T) {
	code := 1
	alias := "Abnormal"
	runTime := "2024-03-01 10:00:00"
	ran := schedule.Record{ID: 4, IsActive: true, LatestStatus: &code, LatestStatusAlias: &alias, LatestRunTime: &runTime}

	row := NewTableRow(0, ran, AllPermissions())
	assert.Equal(t, 1, row.Series)
	assert.Equal(t, Tag{Text: "Abnormal", Color: schedule.ColorOrange}, row.Tag)
	assert.True(t, row.Actions.Detail)
	assert.True(t, row.Actions.Edit)
	assert.True(t, row.Actions.Delete)
	assert.Equal(t, "Deactivate", row.Actions.ToggleLabel)

	idle := NewTableRow(4, schedule.Record{ID: 9}, ParsePermissions(PermScheduleEdit))
	assert.Equal(t, 5, idle.Series)
	assert.Equal(t, Tag{Text: schedule.LabelInactive, Color: schedule.ColorNone}, idle.Tag)
	assert.False(t, idle.Actions.Detail)
	assert.True(t, idle.Actions.Edit)
	assert.False(t, idle.Actions.Delete)
	assert.Equal(t, "Activate", idle.Actions.ToggleLabel)
}

func TestTableQuery_Normalize(t *testing.T) {
	q := TableQuery{}
	assert.NoError(t, q.Normalize())
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)

	for _, size := range PageSizes {
		q := TableQuery{PageSize: size}
		assert.NoError(t, q.Normalize())
	}

	assert.Error(t, (&TableQuery{PageSize: 15}).Normalize())
	assert.Error(t, (&TableQuery{Page: -1}).Normalize())
}

func TestParsePermissions(t *testing.T) {
	all := ParsePermissions("")
	assert.True(t, all.Has(PermScheduleEdit))
	assert.True(t, all.Has("anything"))

	some := ParsePermissions(" schedule.schedule.edit , ,schedule.other ")
	assert.True(t, some.Has(PermScheduleEdit))
	assert.True(t, some.Has("schedule.other"))
	assert.False(t, some.Has(PermScheduleDelete))
}
