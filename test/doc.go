// Package test provides infrastructure and utilities for integration testing in Cadence.
//
// The test package implements a complete test setup that allows testing
// the interaction between the API client, the HTTP handlers, the schedule
// service and the database while keeping run execution under control.
//
// The package provides:
//
//   - Suite: a struct that manages a file-based SQLite database, a real API
//     server, the cron scheduler fed by the event bus and a real API client
//
//   - StubExecutor: a run executor with a fixed outcome, for tests that must
//     not depend on the local shell or network
//
// Example Usage:
//
//	func TestExample(t *testing.T) {
//	    suite := test.NewSuite(t)
//	    defer suite.Cleanup()
//
//	    // Use suite.APIClient to make requests
//	    // Use suite.ScheduleService.RunScheduled to simulate a cron trigger
//	}
package test
