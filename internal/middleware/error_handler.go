package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/undercop/finfinal/internal/pkg/response"
)

// ErrorHandler is the app-level Fiber error handler. Everything unhandled
// ends up here and leaves as the standard error envelope; unexpected
// failures are logged with their trace ID but never leak internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("trace_id", GetTraceID(c)).
			Str("path", c.Path()).
			Msg("unhandled error")
	}

	return response.Error(c, message, code, nil)
}
