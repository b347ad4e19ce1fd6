package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/undercop/finfinal/internal/domain"
)

// HTTPClient is a Client backed by the backend's REST API.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPClient builds a client with the given base URL and request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if c.BaseURL == "" {
		return fmt.Errorf("backendapi: base URL is not set")
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backendapi: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("backendapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backendapi: %s %s: status %d body: %s", method, path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(respBody)
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("backendapi: %s %s: decode response: %w", method, path, err)
	}
	return nil
}

// GetHoldings GET /api/holdings.
func (c *HTTPClient) GetHoldings(ctx context.Context) ([]domain.Holding, error) {
	var rows []struct {
		AssetID      int64   `json:"assetId"`
		AssetName    string  `json:"assetName"`
		Quantity     int     `json:"quantity"`
		AvgBuyPrice  float64 `json:"avgBuyPrice"`
		CurrentPrice float64 `json:"currentPrice"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/holdings", nil, &rows); err != nil {
		return nil, err
	}
	holdings := make([]domain.Holding, 0, len(rows))
	for _, r := range rows {
		holdings = append(holdings, domain.Holding{
			AssetID:      r.AssetID,
			AssetName:    r.AssetName,
			Quantity:     r.Quantity,
			AvgBuyPrice:  r.AvgBuyPrice,
			CurrentPrice: r.CurrentPrice,
		})
	}
	return holdings, nil
}

// GetAssets GET /api/assets.
func (c *HTTPClient) GetAssets(ctx context.Context) ([]domain.Asset, error) {
	var rows []struct {
		ID           int64   `json:"id"`
		Name         string  `json:"name"`
		Category     string  `json:"category"`
		CurrentPrice float64 `json:"currentPrice"`
		LastDayPrice float64 `json:"lastDayPrice"`
		Quantity     int     `json:"quantity"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/assets", nil, &rows); err != nil {
		return nil, err
	}
	assets := make([]domain.Asset, 0, len(rows))
	for _, r := range rows {
		assets = append(assets, domain.Asset{
			ID:           r.ID,
			Name:         r.Name,
			Category:     domain.ParseCategory(r.Category),
			CurrentPrice: r.CurrentPrice,
			LastDayPrice: r.LastDayPrice,
			Quantity:     r.Quantity,
		})
	}
	return assets, nil
}

type livePriceRow struct {
	AssetID   int64   `json:"assetId"`
	Price     float64 `json:"price"`
	UpdatedAt string  `json:"updatedAt"`
}

func (r livePriceRow) sample() domain.PriceSample {
	observed, err := time.Parse("2006-01-02T15:04:05", r.UpdatedAt)
	if err != nil {
		observed = time.Now()
	}
	return domain.PriceSample{AssetID: r.AssetID, Price: r.Price, ObservedAt: observed}
}

// GetLivePrice GET /api/live-prices/{assetId}.
func (c *HTTPClient) GetLivePrice(ctx context.Context, assetID int64) (domain.PriceSample, error) {
	var row livePriceRow
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/live-prices/%d", assetID), nil, &row); err != nil {
		return domain.PriceSample{}, err
	}
	return row.sample(), nil
}

// GetLivePrices GET /api/live-prices.
func (c *HTTPClient) GetLivePrices(ctx context.Context) ([]domain.PriceSample, error) {
	var rows []livePriceRow
	if err := c.do(ctx, http.MethodGet, "/api/live-prices", nil, &rows); err != nil {
		return nil, err
	}
	samples := make([]domain.PriceSample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, r.sample())
	}
	return samples, nil
}

// GetIntradayPrices GET /api/intraday-prices/{assetId}. Rows arrive in
// chronological order; timestamps become HH:MM chart labels.
func (c *HTTPClient) GetIntradayPrices(ctx context.Context, assetID int64) ([]domain.IntradayPoint, error) {
	var rows []struct {
		AssetID   int64   `json:"assetId"`
		Price     float64 `json:"price"`
		Timestamp string  `json:"timestamp"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/intraday-prices/%d", assetID), nil, &rows); err != nil {
		return nil, err
	}
	points := make([]domain.IntradayPoint, 0, len(rows))
	for _, r := range rows {
		label := r.Timestamp
		if ts, err := time.Parse("2006-01-02T15:04:05", r.Timestamp); err == nil {
			label = ts.Format("15:04")
		}
		points = append(points, domain.IntradayPoint{TimeLabel: label, Price: r.Price})
	}
	return points, nil
}

// GetPriceHistory GET /api/price-history/{assetId}.
func (c *HTTPClient) GetPriceHistory(ctx context.Context, assetID int64) ([]domain.PricePoint, error) {
	var rows []domain.PricePoint
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/price-history/%d", assetID), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetPortfolioSummary GET /api/portfolio/summary.
func (c *HTTPClient) GetPortfolioSummary(ctx context.Context) (domain.PortfolioSummary, error) {
	var out domain.PortfolioSummary
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/summary", nil, &out); err != nil {
		return domain.PortfolioSummary{}, err
	}
	return out, nil
}

// GetRiskAnalysis GET /api/ai/risk.
func (c *HTTPClient) GetRiskAnalysis(ctx context.Context) (domain.RiskAnalysis, error) {
	var out domain.RiskAnalysis
	if err := c.do(ctx, http.MethodGet, "/api/ai/risk", nil, &out); err != nil {
		return domain.RiskAnalysis{}, err
	}
	return out, nil
}

// GetRebalanceSuggestions GET /api/ai/rebalance. The backend returns plain
// text generated by its model; relayed untouched.
func (c *HTTPClient) GetRebalanceSuggestions(ctx context.Context) (string, error) {
	var out string
	if err := c.do(ctx, http.MethodGet, "/api/ai/rebalance", nil, &out); err != nil {
		return "", err
	}
	return out, nil
}

// GetCriticalAlerts GET /api/alerts/critical.
func (c *HTTPClient) GetCriticalAlerts(ctx context.Context) ([]domain.CriticalAlert, error) {
	var out []domain.CriticalAlert
	if err := c.do(ctx, http.MethodGet, "/api/alerts/critical", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTransactions GET /api/transactions (newest first, asset name joined).
func (c *HTTPClient) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var rows []struct {
		ID       int64   `json:"id"`
		Type     string  `json:"type"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
		Date     string  `json:"date"`
		Asset    struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"asset"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &rows); err != nil {
		return nil, err
	}
	txs := make([]domain.Transaction, 0, len(rows))
	for _, r := range rows {
		txType, err := domain.ParseTransactionType(r.Type)
		if err != nil {
			// Unknown type from the backend: drop the row, not the batch.
			continue
		}
		ts, err := time.Parse("2006-01-02T15:04:05", r.Date)
		if err != nil {
			ts = time.Time{}
		}
		txs = append(txs, domain.Transaction{
			ID:        r.ID,
			Type:      txType,
			AssetID:   r.Asset.ID,
			AssetName: r.Asset.Name,
			Quantity:  r.Quantity,
			Price:     r.Price,
			Timestamp: ts,
		})
	}
	return txs, nil
}

// PlaceTrade POST /api/transactions.
func (c *HTTPClient) PlaceTrade(ctx context.Context, req domain.TradeRequest) (domain.OrderConfirmation, error) {
	body := map[string]interface{}{
		"assetId":  req.AssetID,
		"type":     string(req.Type),
		"quantity": req.Quantity,
		"price":    req.Price,
	}
	var row struct {
		ID        int64   `json:"id"`
		Type      string  `json:"type"`
		AssetID   int64   `json:"assetId"`
		Quantity  int     `json:"quantity"`
		Price     float64 `json:"price"`
		Timestamp string  `json:"timestamp"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/transactions", body, &row); err != nil {
		return domain.OrderConfirmation{}, err
	}
	txType, _ := domain.ParseTransactionType(row.Type)
	ts, err := time.Parse("2006-01-02T15:04:05", row.Timestamp)
	if err != nil {
		ts = time.Now()
	}
	return domain.OrderConfirmation{
		ID:        row.ID,
		Type:      txType,
		AssetID:   row.AssetID,
		Quantity:  row.Quantity,
		Price:     row.Price,
		Timestamp: ts,
	}, nil
}
