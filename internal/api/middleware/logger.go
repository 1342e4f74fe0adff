// Package middleware provides fiber middleware shared by the API routes
package middleware

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	log "github.com/celestiaorg/cadence/internal/logger"
)

// RequestIDHeader carries the request ID back to the caller
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the fiber Locals key holding the request ID
const requestIDKey = "request_id"

// Logger returns a middleware that logs HTTP requests
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(requestIDKey, requestID)
		c.Set(RequestIDHeader, requestID)

		// Continue chain
		err := c.Next()

		stop := time.Now()
		fields := map[string]interface{}{
			"request_id": requestID,
			"status":     c.Response().StatusCode(),
			"latency":    stop.Sub(start).String(),
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.Path(),
			"handler":    c.Route().Name,
		}
		if err != nil {
			fields["error"] = err.Error()
			log.WarnWithFields("Request", fields)
			return err
		}
		log.InfoWithFields("Request", fields)
		return nil
	}
}

// RequestID returns the request ID assigned by Logger, if any
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}
