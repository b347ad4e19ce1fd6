package models

import (
	"time"

	"gorm.io/datatypes"
)

// Trade journal entry statuses.
const (
	TradeStatusPending   = "PENDING"
	TradeStatusConfirmed = "CONFIRMED"
	TradeStatusFailed    = "FAILED"
)

// TradeJournalEntry is a local audit record of every trade submission
// attempt. The backend remains the source of truth for post-trade state;
// the journal only answers "what did this client send, and what came back".
type TradeJournalEntry struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ClientOrderID string         `gorm:"column:client_order_id;size:36;uniqueIndex;not null" json:"clientOrderId"`
	AssetID       int64          `gorm:"column:asset_id;not null" json:"assetId"`
	Type          string         `gorm:"column:type;size:10;not null" json:"type"`
	Quantity      int            `gorm:"column:quantity;not null" json:"quantity"`
	Price         float64        `gorm:"column:price;not null" json:"price"`
	Status        string         `gorm:"column:status;size:12;not null" json:"status"`
	Detail        datatypes.JSON `gorm:"column:detail" json:"detail"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (TradeJournalEntry) TableName() string {
	return "trade_journal"
}
