package portfolio

import (
	"github.com/gofiber/fiber/v2"

	portfoliosvc "github.com/undercop/finfinal/internal/application/portfolio"
	"github.com/undercop/finfinal/internal/pkg/response"
)

type Handlers struct {
	Service *portfoliosvc.Service
}

// Valuation GET /api/v1/portfolio/valuation — recomputed from holdings ×
// price cache on every call.
func (h *Handlers) Valuation(c *fiber.Ctx) error {
	snapshot := h.Service.Valuation()
	return response.Success(c, "Portfolio valuation", snapshot, fiber.Map{
		"stale": snapshot.Stale,
	})
}

// Diversification GET /api/v1/portfolio/diversification.
func (h *Handlers) Diversification(c *fiber.Ctx) error {
	return response.Success(c, "Portfolio diversification", h.Service.Diversification(), nil)
}

// Summary GET /api/v1/portfolio/summary — backend passthrough.
func (h *Handlers) Summary(c *fiber.Ctx) error {
	summary, err := h.Service.Summary(c.Context())
	if err != nil {
		return response.Error(c, "Portfolio summary unavailable", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}
	return response.Success(c, "Portfolio summary", summary, nil)
}

// Holdings GET /api/v1/holdings — the current local copy.
func (h *Handlers) Holdings(c *fiber.Ctx) error {
	return response.Success(c, "Holdings", h.Service.Holdings(), nil)
}

// Assets GET /api/v1/assets.
func (h *Handlers) Assets(c *fiber.Ctx) error {
	return response.Success(c, "Assets", h.Service.Assets(), nil)
}

// Refresh POST /api/v1/portfolio/refresh — explicit full reload from the
// backend.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	if err := h.Service.Refresh(c.Context()); err != nil {
		return response.Error(c, "Refresh failed", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}
	return response.Success(c, "Holdings refreshed", fiber.Map{
		"holdings": len(h.Service.Holdings()),
		"assets":   len(h.Service.Assets()),
	}, nil)
}

// StartLive POST /api/v1/live/start — the live view became active.
func (h *Handlers) StartLive(c *fiber.Ctx) error {
	h.Service.StartLive()
	return response.Success(c, "Live polling started", fiber.Map{
		"state": h.Service.LiveState(),
	}, nil)
}

// StopLive POST /api/v1/live/stop — the live view closed.
func (h *Handlers) StopLive(c *fiber.Ctx) error {
	h.Service.StopLive()
	return response.Success(c, "Live polling stopped", fiber.Map{
		"state": h.Service.LiveState(),
	}, nil)
}
