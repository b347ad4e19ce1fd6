package domain

// Holding is a read-only, refreshable copy of a backend holdings row.
// AssetID references the Asset catalog without owning it. AvgBuyPrice is
// recomputed by the backend on every trade; this service treats it as
// authoritative input. CurrentPrice is the static price from the holdings
// fetch, used as a fallback when no live price is cached.
type Holding struct {
	AssetID      int64   `json:"assetId"`
	AssetName    string  `json:"assetName"`
	Quantity     int     `json:"quantity"`
	AvgBuyPrice  float64 `json:"avgBuyPrice"`
	CurrentPrice float64 `json:"currentPrice"`
}

// Active reports whether the holding participates in aggregation.
// A holding sold down to zero stays in the set but is skipped, matching
// the backend which keeps the row and filters quantity <= 0.
func (h Holding) Active() bool {
	return h.Quantity > 0
}
