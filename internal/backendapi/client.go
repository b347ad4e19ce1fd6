package backendapi

import (
	"context"

	"github.com/undercop/finfinal/internal/domain"
)

// Client defines what the gateway needs from the investment backend.
// The backend owns holdings, the asset catalog, order matching and all
// analysis models; this service only consumes them.
type Client interface {
	GetHoldings(ctx context.Context) ([]domain.Holding, error)
	GetAssets(ctx context.Context) ([]domain.Asset, error)
	GetLivePrice(ctx context.Context, assetID int64) (domain.PriceSample, error)
	GetLivePrices(ctx context.Context) ([]domain.PriceSample, error)
	GetIntradayPrices(ctx context.Context, assetID int64) ([]domain.IntradayPoint, error)
	GetPriceHistory(ctx context.Context, assetID int64) ([]domain.PricePoint, error)
	GetPortfolioSummary(ctx context.Context) (domain.PortfolioSummary, error)
	GetRiskAnalysis(ctx context.Context) (domain.RiskAnalysis, error)
	GetRebalanceSuggestions(ctx context.Context) (string, error)
	GetCriticalAlerts(ctx context.Context) ([]domain.CriticalAlert, error)
	GetTransactions(ctx context.Context) ([]domain.Transaction, error)
	PlaceTrade(ctx context.Context, req domain.TradeRequest) (domain.OrderConfirmation, error)
}
