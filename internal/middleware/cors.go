package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/undercop/finfinal/internal/pkg/response"
)

// CORSConfig controls which dashboard origins may call the gateway.
type CORSConfig struct {
	// AllowedSuffix admits any origin ending with it (the deployed
	// dashboard's domain). Empty means no suffix-based admission.
	AllowedSuffix string
	// DevPassword admits any origin carrying the matching dev-password
	// header, for previews and local tools.
	DevPassword string
}

func localOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost:") ||
		strings.HasPrefix(origin, "http://127.0.0.1:")
}

// CORS admits the configured dashboard origin (by suffix), local dev
// origins on preflight, and dev-password requests. Everything else gets the
// standard error envelope with 403.
func CORS(cfg CORSConfig) fiber.Handler {
	suffix := strings.ToLower(cfg.AllowedSuffix)

	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" {
			// Same-origin or non-browser callers.
			return c.Next()
		}

		if c.Method() == fiber.MethodOptions && localOrigin(origin) {
			allowOrigin(c, origin)
			return c.SendStatus(fiber.StatusNoContent)
		}

		allowed := suffix != "" && strings.HasSuffix(strings.ToLower(origin), suffix)
		if !allowed && cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword {
			allowed = true
		}
		if !allowed {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
		}

		allowOrigin(c, origin)
		return c.Next()
	}
}

func allowOrigin(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Credentials", "true")
	c.Set("Access-Control-Allow-Headers", "Content-Type, X-Trace-Id, dev-password")
}
