package domain

import "time"

// PriceSample is the most recent observed live price for an asset.
type PriceSample struct {
	AssetID    int64     `json:"assetId"`
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observedAt"`
}

// IntradayPoint is one step of today's price series for an asset.
type IntradayPoint struct {
	TimeLabel string  `json:"timeLabel"`
	Price     float64 `json:"price"`
}

// PricePoint is one day of long-range price history.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}
