package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// DefaultHTTPTimeout bounds a request when the context carries no deadline
const DefaultHTTPTimeout = 30 * time.Second

// HTTP requests the schedule's command as a URL
type HTTP struct {
	Timeout time.Duration
}

// NewHTTP creates an http executor with the default timeout
func NewHTTP() *HTTP {
	return &HTTP{Timeout: DefaultHTTPTimeout}
}

// Run implements Executor
func (h *HTTP) Run(ctx context.Context, s models.Schedule) Result {
	start := time.Now()

	agent := fiber.Get(s.Command)
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(h.Timeout)
	}

	statusCode, body, errs := agent.Bytes()
	res := Result{Duration: time.Since(start), Output: truncate(body)}

	switch {
	case len(errs) > 0:
		res.Status = models.RunStatusFailed
		res.Output = appendLine(res.Output, fmt.Sprintf("request failed: %v", errs[0]))
	case statusCode >= 200 && statusCode < 300:
		res.Status = models.RunStatusSucceeded
	default:
		res.Status = models.RunStatusAbnormal
		res.Output = appendLine(res.Output, fmt.Sprintf("unexpected status code %d", statusCode))
	}
	return res
}
