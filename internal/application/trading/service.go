package trading

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/undercop/finfinal/internal/backendapi"
	"github.com/undercop/finfinal/internal/domain"
	"github.com/undercop/finfinal/internal/models"
)

// ErrTradeInFlight is returned when a submission arrives while another one
// is still pending. Resubmission is debounced by state, not by time.
var ErrTradeInFlight = errors.New("a trade submission is already in progress")

// Refresher reloads the holdings set after a confirmed trade.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Service submits buy/sell intents to the backend. On success the holdings
// set is stale and reloaded in full; the service never patches quantities or
// average prices locally, since average-cost recomputation is backend-owned.
type Service struct {
	Backend   backendapi.Client
	Portfolio Refresher
	DB        *gorm.DB // optional trade journal

	// inFlight debounces submission by state: a second Submit while one is
	// pending is rejected, not queued.
	inFlight chan struct{}
}

func New(backend backendapi.Client, portfolio Refresher, db *gorm.DB) *Service {
	return &Service{Backend: backend, Portfolio: portfolio, DB: db, inFlight: make(chan struct{}, 1)}
}

// Submit places one trade. A failed submission leaves all local state
// unchanged; a confirmed one triggers exactly one full holdings reload.
func (s *Service) Submit(ctx context.Context, req domain.TradeRequest) (domain.OrderConfirmation, error) {
	if err := req.Validate(); err != nil {
		return domain.OrderConfirmation{}, err
	}

	select {
	case s.inFlight <- struct{}{}:
		defer func() { <-s.inFlight }()
	default:
		return domain.OrderConfirmation{}, ErrTradeInFlight
	}

	clientOrderID := uuid.New().String()
	s.journal(ctx, clientOrderID, req, models.TradeStatusPending, map[string]interface{}{
		"request": req,
	})

	conf, err := s.Backend.PlaceTrade(ctx, req)
	if err != nil {
		s.journalUpdate(ctx, clientOrderID, models.TradeStatusFailed, map[string]interface{}{
			"error": err.Error(),
		})
		return domain.OrderConfirmation{}, err
	}

	s.journalUpdate(ctx, clientOrderID, models.TradeStatusConfirmed, map[string]interface{}{
		"confirmation": conf,
	})

	// Backend is the single source of truth for post-trade state: quantity
	// and average price come back via the reload, never old+delta.
	if err := s.Portfolio.Refresh(ctx); err != nil {
		log.Warn().Err(err).Str("client_order_id", clientOrderID).
			Msg("holdings reload after trade failed; snapshots are stale until the next refresh")
	}

	return conf, nil
}

func (s *Service) journal(ctx context.Context, clientOrderID string, req domain.TradeRequest, status string, detail map[string]interface{}) {
	if s.DB == nil {
		return
	}
	payload, _ := json.Marshal(detail)
	entry := models.TradeJournalEntry{
		ClientOrderID: clientOrderID,
		AssetID:       req.AssetID,
		Type:          string(req.Type),
		Quantity:      req.Quantity,
		Price:         req.Price,
		Status:        status,
		Detail:        datatypes.JSON(payload),
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Warn().Err(err).Str("client_order_id", clientOrderID).Msg("trade journal write failed")
	}
}

func (s *Service) journalUpdate(ctx context.Context, clientOrderID, status string, detail map[string]interface{}) {
	if s.DB == nil {
		return
	}
	payload, _ := json.Marshal(detail)
	err := s.DB.WithContext(ctx).
		Model(&models.TradeJournalEntry{}).
		Where("client_order_id = ?", clientOrderID).
		Updates(map[string]interface{}{"status": status, "detail": datatypes.JSON(payload)}).Error
	if err != nil {
		log.Warn().Err(err).Str("client_order_id", clientOrderID).Msg("trade journal update failed")
	}
}

// Journal returns the most recent local submission records, newest first.
func (s *Service) Journal(ctx context.Context, limit int) ([]models.TradeJournalEntry, error) {
	if s.DB == nil {
		return []models.TradeJournalEntry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	var entries []models.TradeJournalEntry
	err := s.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}
