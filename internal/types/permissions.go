package types

import "strings"

// Permission codes that gate row actions
const (
	PermScheduleEdit   = "schedule.schedule.edit"
	PermScheduleDelete = "schedule.schedule.del"
)

// PermissionsHeader lists the caller's permission codes, comma separated
const PermissionsHeader = "X-Cadence-Permissions"

// Permissions is the set of permission codes held by a caller.
// The zero value holds every permission.
type Permissions struct {
	codes map[string]struct{}
}

// AllPermissions returns a set that grants everything
func AllPermissions() Permissions {
	return Permissions{}
}

// ParsePermissions parses a comma separated list of codes.
// An empty header means no restriction is configured.
func ParsePermissions(header string) Permissions {
	header = strings.TrimSpace(header)
	if header == "" {
		return AllPermissions()
	}

	p := Permissions{codes: map[string]struct{}{}}
	for _, code := range strings.Split(header, ",") {
		if code = strings.TrimSpace(code); code != "" {
			p.codes[code] = struct{}{}
		}
	}
	return p
}

// Has reports whether code is granted
func (p Permissions) Has(code string) bool {
	if p.codes == nil {
		return true
	}
	_, ok := p.codes[code]
	return ok
}

// String renders the set in header form; empty for AllPermissions
func (p Permissions) String() string {
	codes := make([]string, 0, len(p.codes))
	for code := range p.codes {
		codes = append(codes, code)
	}
	return strings.Join(codes, ",")
}
