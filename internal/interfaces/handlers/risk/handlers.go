package risk

import (
	"github.com/gofiber/fiber/v2"

	portfoliosvc "github.com/undercop/finfinal/internal/application/portfolio"
	"github.com/undercop/finfinal/internal/pkg/response"
)

type Handlers struct {
	Portfolio *portfoliosvc.Service
}

// Analysis GET /api/v1/risk — the backend's risk assessment, relayed
// wholesale. The scoring model is the backend's; this service only renders.
func (h *Handlers) Analysis(c *fiber.Ctx) error {
	analysis, err := h.Portfolio.Risk(c.Context())
	if err != nil {
		return response.Error(c, "Risk analysis unavailable", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}
	return response.Success(c, "Risk analysis", analysis, nil)
}

// Rebalance GET /api/v1/risk/rebalance — generated rebalancing text.
func (h *Handlers) Rebalance(c *fiber.Ctx) error {
	text, err := h.Portfolio.RebalanceSuggestions(c.Context())
	if err != nil {
		return response.Error(c, "Rebalance suggestions unavailable", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}
	return response.Success(c, "Rebalance suggestions", fiber.Map{"text": text}, nil)
}

// CriticalAlerts GET /api/v1/alerts/critical.
func (h *Handlers) CriticalAlerts(c *fiber.Ctx) error {
	alerts, err := h.Portfolio.CriticalAlerts(c.Context())
	if err != nil {
		return response.Error(c, "Alerts unavailable", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}
	return response.Success(c, "Critical alerts", alerts, nil)
}
