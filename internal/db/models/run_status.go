package models

import "fmt"

// RunStatus is the outcome code of a single schedule run
type RunStatus int

// Run status constants. The numeric values are part of the API.
const (
	// RunStatusSucceeded means the run finished cleanly
	RunStatusSucceeded RunStatus = iota
	// RunStatusAbnormal means the run finished but reported a problem (non-zero exit, non-2xx)
	RunStatusAbnormal
	// RunStatusFailed means the run could not be carried out
	RunStatusFailed
)

var runStatusNames = []string{"succeeded", "abnormal", "failed"}

var runStatusAliases = []string{"Succeeded", "Abnormal", "Failed"}

// UnknownRunStatusAlias is the alias reported for codes outside the known set
const UnknownRunStatusAlias = "Unknown"

// Valid reports whether s is one of the known run statuses
func (s RunStatus) Valid() bool {
	return s >= RunStatusSucceeded && int(s) < len(runStatusNames)
}

func (s RunStatus) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return runStatusNames[s]
}

// Alias returns the human readable label of the status
func (s RunStatus) Alias() string {
	if !s.Valid() {
		return UnknownRunStatusAlias
	}
	return runStatusAliases[s]
}

// ParseRunStatus converts the string name of a run status to RunStatus
func ParseRunStatus(str string) (RunStatus, error) {
	for i, name := range runStatusNames {
		if name == str {
			return RunStatus(i), nil
		}
	}
	return RunStatus(0), fmt.Errorf("invalid run status: %s", str)
}
