package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// Command runs the schedule's command through a login shell
type Command struct {
	Shell string
}

// NewCommand creates a command executor using bash
func NewCommand() *Command {
	return &Command{Shell: "bash"}
}

// Run implements Executor
func (c *Command) Run(ctx context.Context, s models.Schedule) Result {
	start := time.Now()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Shell, "-lc", s.Command)
	cmd.Stdout = &out
	cmd.Stderr = &out
	// children of the shell may keep the output pipe open after a kill
	cmd.WaitDelay = time.Second
	err := cmd.Run()

	res := Result{Duration: time.Since(start), Output: truncate(out.Bytes())}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.Status = models.RunStatusSucceeded
	case ctx.Err() != nil:
		res.Status = models.RunStatusFailed
		res.Output = appendLine(res.Output, fmt.Sprintf("run aborted: %v", ctx.Err()))
	case errors.As(err, &exitErr):
		res.Status = models.RunStatusAbnormal
		res.Output = appendLine(res.Output, fmt.Sprintf("exit status %d", exitErr.ExitCode()))
	default:
		res.Status = models.RunStatusFailed
		res.Output = appendLine(res.Output, err.Error())
	}
	return res
}

func appendLine(out, line string) string {
	if out == "" || out[len(out)-1] == '\n' {
		return out + line
	}
	return out + "\n" + line
}
