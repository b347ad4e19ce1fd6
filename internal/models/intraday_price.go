package models

import "time"

// IntradayPrice is one locally recorded price sample. The live poller
// appends a row per asset per applied cycle so intraday charts can be served
// without another backend round trip, and so the series survives a restart.
type IntradayPrice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AssetID   int64     `gorm:"column:asset_id;index:idx_intraday_asset_ts;not null" json:"assetId"`
	Price     float64   `gorm:"column:price;not null" json:"price"`
	Timestamp time.Time `gorm:"column:timestamp;index:idx_intraday_asset_ts;not null" json:"timestamp"`
}

func (IntradayPrice) TableName() string {
	return "intraday_prices"
}
