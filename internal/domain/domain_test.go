package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryStock, ParseCategory("STOCK"))
	assert.Equal(t, CategoryGoldETF, ParseCategory("GOLD_ETF"))
	assert.Equal(t, CategoryOther, ParseCategory("CRYPTO"))
	assert.Equal(t, CategoryOther, ParseCategory(""))
}

func TestParseTransactionType(t *testing.T) {
	got, err := ParseTransactionType("buy")
	require.NoError(t, err)
	assert.Equal(t, TxBuy, got)

	got, err = ParseTransactionType(" DIVIDEND ")
	require.NoError(t, err)
	assert.Equal(t, TxDividend, got)

	_, err = ParseTransactionType("AIRDROP")
	assert.Error(t, err)
}

func TestTransactionTypeTradeable(t *testing.T) {
	assert.True(t, TxBuy.Tradeable())
	assert.True(t, TxSell.Tradeable())
	assert.False(t, TxDeposit.Tradeable())
	assert.False(t, TxDividend.Tradeable())
}

func TestTradeRequestValidate(t *testing.T) {
	valid := TradeRequest{AssetID: 1, Type: TxBuy, Quantity: 5, Price: 100}
	assert.NoError(t, valid.Validate())

	cases := map[string]TradeRequest{
		"missing asset":     {Type: TxBuy, Quantity: 5, Price: 100},
		"untradeable type":  {AssetID: 1, Type: TxDeposit, Quantity: 5, Price: 100},
		"zero quantity":     {AssetID: 1, Type: TxSell, Quantity: 0, Price: 100},
		"negative quantity": {AssetID: 1, Type: TxSell, Quantity: -3, Price: 100},
		"negative price":    {AssetID: 1, Type: TxBuy, Quantity: 1, Price: -0.5},
	}
	for name, req := range cases {
		assert.Error(t, req.Validate(), name)
	}
}

func TestHoldingActive(t *testing.T) {
	assert.True(t, Holding{Quantity: 1}.Active())
	assert.False(t, Holding{Quantity: 0}.Active())
}
