package prices

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/undercop/finfinal/internal/backendapi"
)

// Fetcher retrieves current prices for a set of assets, one backend call
// per id, all in flight at once. Total latency is bounded by the slowest
// single call, not the sum.
type Fetcher struct {
	Backend backendapi.Client
}

// FetchPrices returns prices for the ids that succeeded. A per-id failure
// (timeout, error, malformed payload) drops that id from the result and is
// logged; it never fails the batch. The only error case is the operation
// being unattemptable (no backend configured).
func (f *Fetcher) FetchPrices(ctx context.Context, ids []int64) (map[int64]float64, error) {
	if f.Backend == nil {
		return nil, fmt.Errorf("prices: no backend client configured")
	}
	if len(ids) == 0 {
		return map[int64]float64{}, nil
	}

	var mu sync.Mutex
	result := make(map[int64]float64, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(assetID int64) {
			defer wg.Done()
			sample, err := f.Backend.GetLivePrice(ctx, assetID)
			if err != nil {
				log.Warn().Int64("asset_id", assetID).Err(err).Msg("live price fetch failed")
				return
			}
			mu.Lock()
			result[assetID] = sample.Price
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return result, nil
}
