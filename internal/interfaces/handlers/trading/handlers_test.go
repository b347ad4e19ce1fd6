package trading

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tradesvc "github.com/undercop/finfinal/internal/application/trading"
	"github.com/undercop/finfinal/internal/backendapi"
	"github.com/undercop/finfinal/internal/domain"
)

type noopRefresher struct{}

func (noopRefresher) Refresh(ctx context.Context) error { return nil }

func newTestApp(backend backendapi.Client) *fiber.App {
	app := fiber.New()
	h := &Handlers{Service: tradesvc.New(backend, noopRefresher{}, nil)}
	app.Post("/api/v1/trades", h.PlaceTrade)
	app.Get("/api/v1/trades/journal", h.Journal)
	return app
}

func TestPlaceTrade_Success(t *testing.T) {
	backend := &backendapi.StubClient{
		PlaceTradeFunc: func(ctx context.Context, req domain.TradeRequest) (domain.OrderConfirmation, error) {
			return domain.OrderConfirmation{ID: 42, Type: req.Type, AssetID: req.AssetID, Quantity: req.Quantity, Price: req.Price}, nil
		},
	}
	app := newTestApp(backend)

	req := httptest.NewRequest("POST", "/api/v1/trades",
		strings.NewReader(`{"assetId":1,"type":"BUY","quantity":5,"price":120.5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, int64(42), body.Data.ID)
}

func TestPlaceTrade_UnknownType(t *testing.T) {
	app := newTestApp(&backendapi.StubClient{})

	req := httptest.NewRequest("POST", "/api/v1/trades",
		strings.NewReader(`{"assetId":1,"type":"SHORT","quantity":5,"price":120.5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPlaceTrade_ValidationFailure(t *testing.T) {
	app := newTestApp(&backendapi.StubClient{})

	req := httptest.NewRequest("POST", "/api/v1/trades",
		strings.NewReader(`{"assetId":1,"type":"SELL","quantity":0,"price":120.5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPlaceTrade_BackendRejection(t *testing.T) {
	backend := &backendapi.StubClient{
		PlaceTradeFunc: func(ctx context.Context, req domain.TradeRequest) (domain.OrderConfirmation, error) {
			return domain.OrderConfirmation{}, fmt.Errorf("insufficient quantity")
		},
	}
	app := newTestApp(backend)

	req := httptest.NewRequest("POST", "/api/v1/trades",
		strings.NewReader(`{"assetId":1,"type":"SELL","quantity":100,"price":120.5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestJournal_EmptyWithoutDB(t *testing.T) {
	app := newTestApp(&backendapi.StubClient{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/trades/journal", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status string        `json:"status"`
		Data   []interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Empty(t, body.Data)
}
