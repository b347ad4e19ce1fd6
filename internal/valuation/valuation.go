package valuation

import (
	"sort"

	"github.com/undercop/finfinal/internal/domain"
)

// PriceFunc looks up the live price for an asset; ok is false when no live
// price is cached.
type PriceFunc func(assetID int64) (price float64, ok bool)

// CategoryFunc maps an asset to its catalog category.
type CategoryFunc func(assetID int64) domain.AssetCategory

// Valuate derives the valuation snapshot from the holdings set and a price
// lookup. Pure and stateless: the same inputs always produce the same
// snapshot, and nothing is retained between calls.
//
// Each holding prices at the cached live price when one exists, else at the
// holding's static price from the last holdings fetch, so a value is shown
// whenever any price is known. Zero-quantity holdings are skipped.
func Valuate(holdings []domain.Holding, priceOf PriceFunc) domain.ValuationSnapshot {
	snapshot := domain.ValuationSnapshot{Holdings: make([]domain.HoldingValuation, 0, len(holdings))}

	for _, h := range holdings {
		if !h.Active() {
			continue
		}

		price := h.CurrentPrice
		live := false
		if p, ok := priceOf(h.AssetID); ok {
			price = p
			live = true
		}

		current := price * float64(h.Quantity)
		invested := h.AvgBuyPrice * float64(h.Quantity)
		pl := current - invested

		snapshot.Holdings = append(snapshot.Holdings, domain.HoldingValuation{
			AssetID:      h.AssetID,
			AssetName:    h.AssetName,
			Quantity:     h.Quantity,
			AvgBuyPrice:  h.AvgBuyPrice,
			CurrentPrice: price,
			CurrentValue: current,
			Invested:     invested,
			ProfitLoss:   pl,
			Profitable:   pl >= 0,
			LivePrice:    live,
		})

		snapshot.CurrentValue += current
		snapshot.Invested += invested
	}

	snapshot.ProfitLoss = snapshot.CurrentValue - snapshot.Invested
	return snapshot
}

// Diversify buckets holding current-value by asset category. Categories with
// no holdings contribute nothing. When the total value is zero the snapshot
// is empty rather than a zero-division.
func Diversify(holdings []domain.Holding, categoryOf CategoryFunc, priceOf PriceFunc) domain.DiversificationSnapshot {
	buckets := make(map[domain.AssetCategory]float64)
	var total float64

	for _, h := range holdings {
		if !h.Active() {
			continue
		}
		price := h.CurrentPrice
		if p, ok := priceOf(h.AssetID); ok {
			price = p
		}
		value := price * float64(h.Quantity)
		buckets[categoryOf(h.AssetID)] += value
		total += value
	}

	snapshot := domain.DiversificationSnapshot{Total: total}
	if total <= 0 {
		return snapshot
	}

	snapshot.Categories = make([]domain.CategoryExposure, 0, len(buckets))
	for category, value := range buckets {
		snapshot.Categories = append(snapshot.Categories, domain.CategoryExposure{
			Category: category,
			Value:    value,
			Share:    value / total,
		})
	}
	// Map iteration order is random; keep the payload stable for the UI.
	sort.Slice(snapshot.Categories, func(i, j int) bool {
		return snapshot.Categories[i].Value > snapshot.Categories[j].Value
	})
	return snapshot
}
