package transactions

import (
	"github.com/gofiber/fiber/v2"

	portfoliosvc "github.com/undercop/finfinal/internal/application/portfolio"
	"github.com/undercop/finfinal/internal/pkg/response"
)

type Handlers struct {
	Portfolio *portfoliosvc.Service
}

// GetTransactions GET /api/v1/transactions — backend history passthrough,
// newest first with asset names already joined.
func (h *Handlers) GetTransactions(c *fiber.Ctx) error {
	txs, err := h.Portfolio.Transactions(c.Context())
	if err != nil {
		return response.Error(c, "Transactions unavailable", fiber.StatusBadGateway, fiber.Map{"cause": err.Error()})
	}
	return response.Success(c, "Transactions", txs, nil)
}
