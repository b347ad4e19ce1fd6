package prices

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/undercop/finfinal/internal/domain"
)

const (
	storeKey = "prices:last_known"
	storeTTL = 24 * time.Hour
)

// Store persists last-known prices in Redis so a restart warms the cache
// instead of starting empty (stale data beats missing data). Every method
// tolerates Redis being down; persistence is best effort.
type Store struct {
	Rdb *redis.Client
}

// Load returns previously persisted samples, or nil when none exist or
// Redis is unavailable.
func (s *Store) Load(ctx context.Context) []domain.PriceSample {
	if s == nil || s.Rdb == nil {
		return nil
	}
	b, err := s.Rdb.Get(ctx, storeKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("price store load failed")
		}
		return nil
	}
	var samples []domain.PriceSample
	if err := json.Unmarshal(b, &samples); err != nil {
		log.Warn().Err(err).Msg("price store payload malformed, ignoring")
		return nil
	}
	return samples
}

// Save writes the full cache view through to Redis.
func (s *Store) Save(ctx context.Context, view map[int64]domain.PriceSample) {
	if s == nil || s.Rdb == nil {
		return
	}
	samples := make([]domain.PriceSample, 0, len(view))
	for _, sample := range view {
		samples = append(samples, sample)
	}
	b, err := json.Marshal(samples)
	if err != nil {
		return
	}
	if err := s.Rdb.Set(ctx, storeKey, b, storeTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("price store save failed")
	}
}
