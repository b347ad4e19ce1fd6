package history

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/undercop/finfinal/internal/backendapi"
	"github.com/undercop/finfinal/internal/domain"
	"github.com/undercop/finfinal/internal/models"
)

// RetentionWindow is how long intraday samples are kept locally.
const RetentionWindow = 24 * time.Hour

// Service records live price samples into the local store and serves
// intraday chart series from it, falling back to the backend's intraday
// endpoint when the local table has nothing for an asset yet.
type Service struct {
	DB      *gorm.DB
	Backend backendapi.Client
}

// Record appends one row per sample. Called from the live poller after each
// applied merge; a storage failure is logged and dropped, never propagated
// into the polling path.
func (s *Service) Record(samples []domain.PriceSample) {
	if s == nil || s.DB == nil || len(samples) == 0 {
		return
	}
	rows := make([]models.IntradayPrice, 0, len(samples))
	for _, sample := range samples {
		rows = append(rows, models.IntradayPrice{
			AssetID:   sample.AssetID,
			Price:     sample.Price,
			Timestamp: sample.ObservedAt,
		})
	}
	if err := s.DB.Create(&rows).Error; err != nil {
		log.Warn().Err(err).Int("samples", len(rows)).Msg("intraday record failed")
	}
}

// Intraday returns the chronological intraday series for an asset. Local
// rows win; an empty local series falls through to the backend.
func (s *Service) Intraday(ctx context.Context, assetID int64) ([]domain.IntradayPoint, error) {
	if s.DB != nil {
		var rows []models.IntradayPrice
		err := s.DB.WithContext(ctx).
			Where("asset_id = ? AND timestamp >= ?", assetID, time.Now().Add(-RetentionWindow)).
			Order("timestamp asc").
			Find(&rows).Error
		if err != nil {
			log.Warn().Err(err).Int64("asset_id", assetID).Msg("local intraday read failed")
		} else if len(rows) > 0 {
			points := make([]domain.IntradayPoint, 0, len(rows))
			for _, r := range rows {
				points = append(points, domain.IntradayPoint{
					TimeLabel: r.Timestamp.Format("15:04"),
					Price:     r.Price,
				})
			}
			return points, nil
		}
	}
	if s.Backend == nil {
		return []domain.IntradayPoint{}, nil
	}
	return s.Backend.GetIntradayPrices(ctx, assetID)
}

// Prune deletes samples older than the retention window.
func (s *Service) Prune(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.WithContext(ctx).
		Where("timestamp < ?", time.Now().Add(-RetentionWindow)).
		Delete(&models.IntradayPrice{}).Error
}

// StartPruner prunes on a fixed cadence until ctx is cancelled.
func (s *Service) StartPruner(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Prune(ctx); err != nil {
					log.Warn().Err(err).Msg("intraday prune failed")
				}
			}
		}
	}()
}
