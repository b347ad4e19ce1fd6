package backendapi

import (
	"context"
	"fmt"

	"github.com/undercop/finfinal/internal/domain"
)

// StubClient is a Client where each operation delegates to an optional
// function field; unset operations fail. Used as the test double across
// packages and as a seam for wiring partial backends.
type StubClient struct {
	GetHoldingsFunc             func(ctx context.Context) ([]domain.Holding, error)
	GetAssetsFunc               func(ctx context.Context) ([]domain.Asset, error)
	GetLivePriceFunc            func(ctx context.Context, assetID int64) (domain.PriceSample, error)
	GetLivePricesFunc           func(ctx context.Context) ([]domain.PriceSample, error)
	GetIntradayPricesFunc       func(ctx context.Context, assetID int64) ([]domain.IntradayPoint, error)
	GetPriceHistoryFunc         func(ctx context.Context, assetID int64) ([]domain.PricePoint, error)
	GetPortfolioSummaryFunc     func(ctx context.Context) (domain.PortfolioSummary, error)
	GetRiskAnalysisFunc         func(ctx context.Context) (domain.RiskAnalysis, error)
	GetRebalanceSuggestionsFunc func(ctx context.Context) (string, error)
	GetCriticalAlertsFunc       func(ctx context.Context) ([]domain.CriticalAlert, error)
	GetTransactionsFunc         func(ctx context.Context) ([]domain.Transaction, error)
	PlaceTradeFunc              func(ctx context.Context, req domain.TradeRequest) (domain.OrderConfirmation, error)
}

var errStubUnset = fmt.Errorf("backendapi: stub operation not configured")

func (s *StubClient) GetHoldings(ctx context.Context) ([]domain.Holding, error) {
	if s.GetHoldingsFunc == nil {
		return nil, errStubUnset
	}
	return s.GetHoldingsFunc(ctx)
}

func (s *StubClient) GetAssets(ctx context.Context) ([]domain.Asset, error) {
	if s.GetAssetsFunc == nil {
		return nil, errStubUnset
	}
	return s.GetAssetsFunc(ctx)
}

func (s *StubClient) GetLivePrice(ctx context.Context, assetID int64) (domain.PriceSample, error) {
	if s.GetLivePriceFunc == nil {
		return domain.PriceSample{}, errStubUnset
	}
	return s.GetLivePriceFunc(ctx, assetID)
}

func (s *StubClient) GetLivePrices(ctx context.Context) ([]domain.PriceSample, error) {
	if s.GetLivePricesFunc == nil {
		return nil, errStubUnset
	}
	return s.GetLivePricesFunc(ctx)
}

func (s *StubClient) GetIntradayPrices(ctx context.Context, assetID int64) ([]domain.IntradayPoint, error) {
	if s.GetIntradayPricesFunc == nil {
		return nil, errStubUnset
	}
	return s.GetIntradayPricesFunc(ctx, assetID)
}

func (s *StubClient) GetPriceHistory(ctx context.Context, assetID int64) ([]domain.PricePoint, error) {
	if s.GetPriceHistoryFunc == nil {
		return nil, errStubUnset
	}
	return s.GetPriceHistoryFunc(ctx, assetID)
}

func (s *StubClient) GetPortfolioSummary(ctx context.Context) (domain.PortfolioSummary, error) {
	if s.GetPortfolioSummaryFunc == nil {
		return domain.PortfolioSummary{}, errStubUnset
	}
	return s.GetPortfolioSummaryFunc(ctx)
}

func (s *StubClient) GetRiskAnalysis(ctx context.Context) (domain.RiskAnalysis, error) {
	if s.GetRiskAnalysisFunc == nil {
		return domain.RiskAnalysis{}, errStubUnset
	}
	return s.GetRiskAnalysisFunc(ctx)
}

func (s *StubClient) GetRebalanceSuggestions(ctx context.Context) (string, error) {
	if s.GetRebalanceSuggestionsFunc == nil {
		return "", errStubUnset
	}
	return s.GetRebalanceSuggestionsFunc(ctx)
}

func (s *StubClient) GetCriticalAlerts(ctx context.Context) ([]domain.CriticalAlert, error) {
	if s.GetCriticalAlertsFunc == nil {
		return nil, errStubUnset
	}
	return s.GetCriticalAlertsFunc(ctx)
}

func (s *StubClient) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	if s.GetTransactionsFunc == nil {
		return nil, errStubUnset
	}
	return s.GetTransactionsFunc(ctx)
}

func (s *StubClient) PlaceTrade(ctx context.Context, req domain.TradeRequest) (domain.OrderConfirmation, error) {
	if s.PlaceTradeFunc == nil {
		return domain.OrderConfirmation{}, errStubUnset
	}
	return s.PlaceTradeFunc(ctx, req)
}
