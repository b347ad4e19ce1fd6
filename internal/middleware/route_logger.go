package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Routes the dashboard hits every few seconds while a live view is open.
// Logged at debug so steady-state polling does not drown the log.
var highFrequencyPrefixes = []string{
	"/api/v1/prices/live",
	"/api/v1/portfolio/valuation",
	"/api/v1/portfolio/diversification",
}

func routeLevel(path string) zerolog.Level {
	for _, prefix := range highFrequencyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return zerolog.DebugLevel
		}
	}
	return zerolog.InfoLevel
}

// RouteLogger logs each request with its trace ID, status and duration.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "no-trace-id"
		}
		start := time.Now()
		err := c.Next()

		log.WithLevel(routeLevel(c.Path())).
			Str("trace_id", traceID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Int64("ms", time.Since(start).Milliseconds()).
			Msg("request")
		return err
	}
}
