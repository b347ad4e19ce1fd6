package domain

// PortfolioSummary is computed wholesale by the backend.
type PortfolioSummary struct {
	TotalPortfolioValue float64 `json:"totalPortfolioValue"`
	OneDayReturn        float64 `json:"oneDayReturn"`
	OneDayReturnValue   float64 `json:"oneDayReturnValue"`
	ProjectedValue      float64 `json:"projectedValue"`
}

// RiskAnalysis is the backend's scoring model output. The gateway only
// relays it; the scoring model itself is the backend's responsibility.
type RiskAnalysis struct {
	RiskScore        float64            `json:"riskScore"`
	RiskLabel        string             `json:"riskLabel"`
	CategoryExposure map[string]float64 `json:"categoryExposure"`
	DimensionScores  map[string]float64 `json:"dimensionScores"`
	Insights         []string           `json:"insights"`
	Summary          string             `json:"summary"`
}

// CriticalAlert is a backend-raised portfolio warning. Severity is
// WARNING or OPPORTUNITY.
type CriticalAlert struct {
	AssetID       int64   `json:"assetId"`
	AssetName     string  `json:"assetName"`
	Category      string  `json:"category"`
	Message       string  `json:"message"`
	ChangePercent float64 `json:"changePercent"`
	Severity      string  `json:"severity"`
}
