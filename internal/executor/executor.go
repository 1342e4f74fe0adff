// Package executor carries out a single run of a schedule
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// MaxOutput is the number of bytes of run output that are kept
const MaxOutput = 64 * 1024

// Result is the outcome of one run
type Result struct {
	Status   models.RunStatus
	Output   string
	Duration time.Duration
}

// Executor runs a schedule's command once
type Executor interface {
	Run(ctx context.Context, s models.Schedule) Result
}

// Dispatcher picks the executor registered for a schedule's type
type Dispatcher struct {
	executors map[models.ScheduleType]Executor
}

// NewDispatcher creates a dispatcher with the command and http executors registered
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		executors: map[models.ScheduleType]Executor{
			models.ScheduleTypeCommand: NewCommand(),
			models.ScheduleTypeHTTP:    NewHTTP(),
		},
	}
}

// Register sets the executor for a schedule type, replacing any previous one
func (d *Dispatcher) Register(t models.ScheduleType, e Executor) {
	d.executors[t] = e
}

// Run implements Executor
func (d *Dispatcher) Run(ctx context.Context, s models.Schedule) Result {
	e, ok := d.executors[s.Type]
	if !ok {
		return Result{
			Status: models.RunStatusFailed,
			Output: fmt.Sprintf("no executor for schedule type %q", s.Type),
		}
	}
	return e.Run(ctx, s)
}

// truncate keeps the tail of out, which usually holds the error.
// The cut lands on a rune boundary and invalid UTF-8 is replaced, since
// the output is stored in a text column.
func truncate(out []byte) string {
	if len(out) > MaxOutput {
		cut := len(out) - MaxOutput
		for i := 0; i < utf8.UTFMax && cut < len(out) && !utf8.RuneStart(out[cut]); i++ {
			cut++
		}
		out = out[cut:]
	}
	return strings.ToValidUTF8(string(out), string(utf8.RuneError))
}
