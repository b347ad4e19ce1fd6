package domain

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType is a tagged variant over the backend's transaction kinds.
// Parse rejects unknown strings so handlers never carry free-form types.
type TransactionType string

const (
	TxBuy      TransactionType = "BUY"
	TxSell     TransactionType = "SELL"
	TxDeposit  TransactionType = "DEPOSIT"
	TxDividend TransactionType = "DIVIDEND"
)

// ParseTransactionType parses a backend/user supplied type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case TxBuy:
		return TxBuy, nil
	case TxSell:
		return TxSell, nil
	case TxDeposit:
		return TxDeposit, nil
	case TxDividend:
		return TxDividend, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Tradeable reports whether the type can be submitted as an order.
// Deposits and dividends are backend-generated records, not user intents.
func (t TransactionType) Tradeable() bool {
	return t == TxBuy || t == TxSell
}

// Transaction is a backend history row (asset name already joined in).
type Transaction struct {
	ID        int64           `json:"id"`
	Type      TransactionType `json:"type"`
	AssetID   int64           `json:"assetId"`
	AssetName string          `json:"assetName"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// TradeRequest is a buy/sell intent submitted to the backend.
type TradeRequest struct {
	AssetID  int64           `json:"assetId"`
	Type     TransactionType `json:"type"`
	Quantity int             `json:"quantity"`
	Price    float64         `json:"price"`
}

// Validate checks the intent before it leaves the service.
func (r TradeRequest) Validate() error {
	if r.AssetID <= 0 {
		return fmt.Errorf("assetId is required")
	}
	if !r.Type.Tradeable() {
		return fmt.Errorf("type must be BUY or SELL, got %q", r.Type)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be a positive integer")
	}
	if r.Price < 0 {
		return fmt.Errorf("price must be non-negative")
	}
	return nil
}

// OrderConfirmation is the backend's response to a placed trade.
type OrderConfirmation struct {
	ID        int64           `json:"id"`
	Type      TransactionType `json:"type"`
	AssetID   int64           `json:"assetId"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}
