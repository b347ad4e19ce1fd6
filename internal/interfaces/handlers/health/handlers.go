package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	healthsvc "github.com/undercop/finfinal/internal/application/health"
	portfoliosvc "github.com/undercop/finfinal/internal/application/portfolio"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	BackendURL string
	Rdb        *redis.Client
	DB         healthsvc.DBPinger
	Portfolio  *portfoliosvc.Service
}

// JSON GET /health/json — dependency and poller status. Degraded is a
// reporting state, never an HTTP error; the gateway keeps serving stale
// figures.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	poller := healthsvc.PollerStatus{}
	if h.Portfolio != nil {
		poller = healthsvc.PollerStatus{
			LiveState:  string(h.Portfolio.LiveState()),
			ChartState: string(h.Portfolio.ChartState()),
			Degraded:   h.Portfolio.Degraded(),
			CachedIDs:  len(h.Portfolio.LivePrices()),
		}
	}
	result := healthsvc.CollectHealth(c.Context(), h.BackendURL, h.Rdb, h.DB, poller)
	return c.JSON(fiber.Map{
		"service":      "finfinal-gateway",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"poller":       result.Poller,
		"dependencies": result.Dependencies,
	})
}
