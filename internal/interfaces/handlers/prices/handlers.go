package prices

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	historysvc "github.com/undercop/finfinal/internal/application/history"
	portfoliosvc "github.com/undercop/finfinal/internal/application/portfolio"
	"github.com/undercop/finfinal/internal/pkg/response"
)

type Handlers struct {
	Portfolio *portfoliosvc.Service
	History   *historysvc.Service
}

func assetIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("assetId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "assetId must be a positive integer")
	}
	return id, nil
}

// Live GET /api/v1/prices/live — the price cache view.
func (h *Handlers) Live(c *fiber.Ctx) error {
	return response.Success(c, "Live prices", h.Portfolio.LivePrices(), nil)
}

// Intraday GET /api/v1/prices/intraday/:assetId — today's series for one
// asset, locally recorded samples first.
func (h *Handlers) Intraday(c *fiber.Ctx) error {
	assetID, err := assetIDParam(c)
	if err != nil {
		return err
	}
	points, err := h.History.Intraday(c.Context(), assetID)
	if err != nil {
		return response.Error(c, "Intraday prices unavailable", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}
	return response.Success(c, "Intraday prices", points, nil)
}

// History GET /api/v1/prices/history/:assetId — daily history passthrough.
func (h *Handlers) History365(c *fiber.Ctx) error {
	assetID, err := assetIDParam(c)
	if err != nil {
		return err
	}
	points, err := h.Portfolio.PriceHistory(c.Context(), assetID)
	if err != nil {
		return response.Error(c, "Price history unavailable", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}
	return response.Success(c, "Price history", points, nil)
}

// StartChart POST /api/v1/prices/chart/:assetId/start — the chart view
// selected an asset; polls it on the chart cadence.
func (h *Handlers) StartChart(c *fiber.Ctx) error {
	assetID, err := assetIDParam(c)
	if err != nil {
		return err
	}
	h.Portfolio.StartChart(assetID)
	return response.Success(c, "Chart polling started", fiber.Map{
		"assetId": assetID,
		"state":   h.Portfolio.ChartState(),
	}, nil)
}

// StopChart POST /api/v1/prices/chart/stop.
func (h *Handlers) StopChart(c *fiber.Ctx) error {
	h.Portfolio.StopChart()
	return response.Success(c, "Chart polling stopped", fiber.Map{
		"state": h.Portfolio.ChartState(),
	}, nil)
}
