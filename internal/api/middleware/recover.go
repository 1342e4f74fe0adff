package middleware

import (
	"fmt"
	"runtime/debug"

	fiber "github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	log "github.com/celestiaorg/cadence/internal/logger"
)

// Recover returns a middleware that turns a handler panic into a 500 response
// and logs the stack trace
func Recover() fiber.Handler {
	return fiberrecover.New(fiberrecover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.ErrorWithFields("Recovered from panic", map[string]interface{}{
				"request_id": RequestID(c),
				"method":     c.Method(),
				"path":       c.Path(),
				"panic":      fmt.Sprint(e),
				"stack":      string(debug.Stack()),
			})
		},
	})
}
