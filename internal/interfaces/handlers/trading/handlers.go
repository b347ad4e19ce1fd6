package trading

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	tradesvc "github.com/undercop/finfinal/internal/application/trading"
	"github.com/undercop/finfinal/internal/domain"
	"github.com/undercop/finfinal/internal/pkg/response"
)

type Handlers struct {
	Service *tradesvc.Service
}

// PlaceTrade POST /api/v1/trades — submits one buy/sell order. While a
// submission is pending further ones are rejected with 409, so the UI can
// disable resubmission by state rather than by timer.
func (h *Handlers) PlaceTrade(c *fiber.Ctx) error {
	var body struct {
		AssetID  int64   `json:"assetId"`
		Type     string  `json:"type"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	txType, err := domain.ParseTransactionType(body.Type)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}

	req := domain.TradeRequest{
		AssetID:  body.AssetID,
		Type:     txType,
		Quantity: body.Quantity,
		Price:    body.Price,
	}
	conf, err := h.Service.Submit(c.Context(), req)
	if err != nil {
		if errors.Is(err, tradesvc.ErrTradeInFlight) {
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		}
		if verr := req.Validate(); verr != nil {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Trade failed", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}

	return response.SuccessCreated(c, "Order placed", conf, nil)
}

// Journal GET /api/v1/trades/journal — local submission audit records.
func (h *Handlers) Journal(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	entries, err := h.Service.Journal(c.Context(), limit)
	if err != nil {
		return response.Error(c, "Journal unavailable", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Trade journal", entries, nil)
}
