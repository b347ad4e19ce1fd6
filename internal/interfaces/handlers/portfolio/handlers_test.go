package portfolio

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portfoliosvc "github.com/undercop/finfinal/internal/application/portfolio"
	"github.com/undercop/finfinal/internal/backendapi"
	"github.com/undercop/finfinal/internal/domain"
	"github.com/undercop/finfinal/internal/prices"
)

func newTestApp(t *testing.T, backend backendapi.Client, cache *prices.Cache) (*fiber.App, *portfoliosvc.Service) {
	t.Helper()
	svc := portfoliosvc.New(backend, cache, nil, nil, time.Hour, time.Hour)
	t.Cleanup(svc.Close)

	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Get("/api/v1/portfolio/valuation", h.Valuation)
	app.Get("/api/v1/portfolio/diversification", h.Diversification)
	app.Get("/api/v1/holdings", h.Holdings)
	app.Get("/api/v1/assets", h.Assets)
	app.Post("/api/v1/portfolio/refresh", h.Refresh)
	app.Post("/api/v1/live/start", h.StartLive)
	app.Post("/api/v1/live/stop", h.StopLive)
	return app, svc
}

func stubBackend() *backendapi.StubClient {
	return &backendapi.StubClient{
		GetHoldingsFunc: func(ctx context.Context) ([]domain.Holding, error) {
			return []domain.Holding{
				{AssetID: 1, AssetName: "Reliance", Quantity: 10, AvgBuyPrice: 100, CurrentPrice: 110},
			}, nil
		},
		GetAssetsFunc: func(ctx context.Context) ([]domain.Asset, error) {
			return []domain.Asset{{ID: 1, Name: "Reliance", Category: domain.CategoryStock}}, nil
		},
	}
}

func TestValuationEndpoint(t *testing.T) {
	cache := prices.NewCache()
	app, svc := newTestApp(t, stubBackend(), cache)
	require.NoError(t, svc.Refresh(context.Background()))
	cache.Apply(map[int64]float64{1: 120}, time.Now())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/portfolio/valuation", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			CurrentValue float64 `json:"currentValue"`
			Invested     float64 `json:"invested"`
			Holdings     []struct {
				CurrentPrice float64 `json:"currentPrice"`
				LivePrice    bool    `json:"livePrice"`
			} `json:"holdings"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 1200.0, body.Data.CurrentValue)
	assert.Equal(t, 1000.0, body.Data.Invested)
	require.Len(t, body.Data.Holdings, 1)
	assert.True(t, body.Data.Holdings[0].LivePrice)
}

func TestDiversificationEndpoint(t *testing.T) {
	app, svc := newTestApp(t, stubBackend(), prices.NewCache())
	require.NoError(t, svc.Refresh(context.Background()))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/portfolio/diversification", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Total      float64 `json:"total"`
			Categories []struct {
				Category string  `json:"category"`
				Share    float64 `json:"share"`
			} `json:"categories"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, 1100.0, body.Data.Total)
	require.Len(t, body.Data.Categories, 1)
	assert.Equal(t, "STOCK", body.Data.Categories[0].Category)
	assert.InDelta(t, 1.0, body.Data.Categories[0].Share, 1e-9)
}

func TestRefreshEndpoint(t *testing.T) {
	app, _ := newTestApp(t, stubBackend(), prices.NewCache())

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/portfolio/refresh", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/holdings", nil), -1)
	require.NoError(t, err)

	var body struct {
		Data []struct {
			AssetName string `json:"assetName"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Reliance", body.Data[0].AssetName)
}

func TestRefreshEndpoint_BackendDown(t *testing.T) {
	app, _ := newTestApp(t, &backendapi.StubClient{}, prices.NewCache())

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/portfolio/refresh", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestLiveStartStopEndpoints(t *testing.T) {
	backend := stubBackend()
	backend.GetLivePriceFunc = func(ctx context.Context, assetID int64) (domain.PriceSample, error) {
		return domain.PriceSample{AssetID: assetID, Price: 115, ObservedAt: time.Now()}, nil
	}
	app, svc := newTestApp(t, backend, prices.NewCache())
	require.NoError(t, svc.Refresh(context.Background()))

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/live/start", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "POLLING", body.Data.State)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/v1/live/stop", nil), -1)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "IDLE", body.Data.State)
}
