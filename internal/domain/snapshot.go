package domain

// HoldingValuation is one row of a valuation snapshot.
type HoldingValuation struct {
	AssetID      int64   `json:"assetId"`
	AssetName    string  `json:"assetName"`
	Quantity     int     `json:"quantity"`
	AvgBuyPrice  float64 `json:"avgBuyPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	CurrentValue float64 `json:"currentValue"`
	Invested     float64 `json:"invested"`
	ProfitLoss   float64 `json:"profitLoss"`
	// Profitable classifies the row for the UI; zero P&L counts as profit.
	Profitable bool `json:"profitable"`
	// LivePrice is false when the row fell back to the static holdings price.
	LivePrice bool `json:"livePrice"`
}

// ValuationSnapshot is derived from holdings × prices. Never persisted,
// recomputed from its inputs on every read.
type ValuationSnapshot struct {
	Holdings     []HoldingValuation `json:"holdings"`
	Invested     float64            `json:"invested"`
	CurrentValue float64            `json:"currentValue"`
	ProfitLoss   float64            `json:"profitLoss"`
	// Stale marks the snapshot as degraded after a total fetch failure.
	Stale bool `json:"stale"`
}

// CategoryExposure is one diversification bucket.
type CategoryExposure struct {
	Category AssetCategory `json:"category"`
	Value    float64       `json:"value"`
	// Share of total current value in [0,1]; shares sum to 1 when Total > 0.
	Share float64 `json:"share"`
}

// DiversificationSnapshot buckets current value by asset category.
// Empty Categories means no data (total value is zero).
type DiversificationSnapshot struct {
	Categories []CategoryExposure `json:"categories"`
	Total      float64            `json:"total"`
}
