package domain

// AssetCategory is the backend's asset classification.
type AssetCategory string

const (
	CategoryStock     AssetCategory = "STOCK"
	CategoryMFLarge   AssetCategory = "MF_LARGE"
	CategoryMFMid     AssetCategory = "MF_MID"
	CategoryMFSmall   AssetCategory = "MF_SMALL"
	CategoryGoldETF   AssetCategory = "GOLD_ETF"
	CategorySilverETF AssetCategory = "SILVER_ETF"
	CategoryOther     AssetCategory = "Other"
)

// ParseCategory maps a backend category string to a known category.
// Unknown or empty strings fall back to Other (same fallback the dashboard uses).
func ParseCategory(s string) AssetCategory {
	switch AssetCategory(s) {
	case CategoryStock, CategoryMFLarge, CategoryMFMid, CategoryMFSmall, CategoryGoldETF, CategorySilverETF:
		return AssetCategory(s)
	}
	return CategoryOther
}

// Asset is a catalog entry owned by the backend. Immutable within a polling
// cycle; refreshed only by an explicit catalog reload.
type Asset struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Category     AssetCategory `json:"category"`
	CurrentPrice float64       `json:"currentPrice"`
	LastDayPrice float64       `json:"lastDayPrice"`
	Quantity     int           `json:"quantity"`
}
