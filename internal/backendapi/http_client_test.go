package backendapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undercop/finfinal/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second)
}

func jsonHandler(t *testing.T, wantPath string, payload string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})
}

func TestGetHoldings(t *testing.T) {
	c := newTestClient(t, jsonHandler(t, "/api/holdings", `[
		{"assetId":1,"assetName":"Reliance","quantity":10,"avgBuyPrice":100.5,"currentPrice":110.25},
		{"assetId":2,"assetName":"Gold ETF","quantity":0,"avgBuyPrice":50,"currentPrice":55}
	]`))

	holdings, err := c.GetHoldings(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	assert.Equal(t, int64(1), holdings[0].AssetID)
	assert.Equal(t, "Reliance", holdings[0].AssetName)
	assert.Equal(t, 10, holdings[0].Quantity)
	assert.Equal(t, 100.5, holdings[0].AvgBuyPrice)
	assert.True(t, holdings[0].Active())
	assert.False(t, holdings[1].Active(), "sold-out rows are still relayed")
}

func TestGetAssets_UnknownCategoryMapsToOther(t *testing.T) {
	c := newTestClient(t, jsonHandler(t, "/api/assets", `[
		{"id":1,"name":"Reliance","category":"STOCK","currentPrice":110,"lastDayPrice":108,"quantity":10},
		{"id":2,"name":"Mystery","category":"CRYPTO","currentPrice":5,"lastDayPrice":5,"quantity":1}
	]`))

	assets, err := c.GetAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, domain.CategoryStock, assets[0].Category)
	assert.Equal(t, domain.CategoryOther, assets[1].Category)
}

func TestGetLivePrice(t *testing.T) {
	c := newTestClient(t, jsonHandler(t, "/api/live-prices/7",
		`{"assetId":7,"price":123.45,"updatedAt":"2026-08-28T10:30:00"}`))

	sample, err := c.GetLivePrice(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), sample.AssetID)
	assert.Equal(t, 123.45, sample.Price)
	assert.Equal(t, time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC), sample.ObservedAt)
}

func TestGetLivePrice_BackendError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "asset not found", http.StatusNotFound)
	}))

	_, err := c.GetLivePrice(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestGetIntradayPrices_TimestampsBecomeChartLabels(t *testing.T) {
	c := newTestClient(t, jsonHandler(t, "/api/intraday-prices/3", `[
		{"assetId":3,"price":100,"timestamp":"2026-08-28T09:15:00"},
		{"assetId":3,"price":101.5,"timestamp":"2026-08-28T09:20:00"}
	]`))

	points, err := c.GetIntradayPrices(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "09:15", points[0].TimeLabel)
	assert.Equal(t, 101.5, points[1].Price)
}

func TestGetRebalanceSuggestions_RelaysPlainText(t *testing.T) {
	const advice = "Shift 5% from small-cap funds into gold."
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/rebalance", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(advice))
	}))

	text, err := c.GetRebalanceSuggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, advice, text)
}

func TestGetTransactions_DropsUnknownTypeRowsOnly(t *testing.T) {
	c := newTestClient(t, jsonHandler(t, "/api/transactions", `[
		{"id":1,"type":"BUY","price":100,"quantity":5,"date":"2026-08-27T14:00:00","asset":{"id":1,"name":"Reliance"}},
		{"id":2,"type":"AIRDROP","price":0,"quantity":1,"date":"2026-08-27T15:00:00","asset":{"id":2,"name":"Mystery"}},
		{"id":3,"type":"dividend","price":12.5,"quantity":1,"date":"2026-08-28T09:00:00","asset":{"id":1,"name":"Reliance"}}
	]`))

	txs, err := c.GetTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, domain.TxBuy, txs[0].Type)
	assert.Equal(t, "Reliance", txs[0].AssetName)
	assert.Equal(t, domain.TxDividend, txs[1].Type, "type matching is case-insensitive")
}

func TestPlaceTrade_PostsIntentAndDecodesConfirmation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transactions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "BUY", body["type"])
		assert.Equal(t, float64(5), body["quantity"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"type":"BUY","assetId":1,"quantity":5,"price":120.5,"timestamp":"2026-08-28T11:00:00"}`))
	}))

	conf, err := c.PlaceTrade(context.Background(), domain.TradeRequest{
		AssetID: 1, Type: domain.TxBuy, Quantity: 5, Price: 120.5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), conf.ID)
	assert.Equal(t, domain.TxBuy, conf.Type)
	assert.Equal(t, 5, conf.Quantity)
	assert.Equal(t, time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC), conf.Timestamp)
}

func TestPlaceTrade_BackendRejection(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"insufficient quantity"}`, http.StatusBadRequest)
	}))

	_, err := c.PlaceTrade(context.Background(), domain.TradeRequest{
		AssetID: 1, Type: domain.TxSell, Quantity: 100, Price: 120,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestDo_NoBaseURL(t *testing.T) {
	c := &HTTPClient{}
	_, err := c.GetHoldings(context.Background())
	assert.Error(t, err)
}

func TestDo_ContextCancellation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetHoldings(ctx)
	assert.Error(t, err)
}
