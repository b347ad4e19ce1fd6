package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/undercop/finfinal/internal/backendapi"
	"github.com/undercop/finfinal/internal/domain"
	"github.com/undercop/finfinal/internal/poller"
	"github.com/undercop/finfinal/internal/prices"
	"github.com/undercop/finfinal/internal/valuation"
)

// Recorder receives each applied cycle's samples (intraday history).
type Recorder interface {
	Record(samples []domain.PriceSample)
}

// Service owns the refreshable holdings/asset copies, the price cache and
// the live poller, and derives the valuation and diversification snapshots
// from them. The backend owns the data; this service owns the sync.
type Service struct {
	Backend  backendapi.Client
	Cache    *prices.Cache
	Store    *prices.Store // optional Redis warm start / write-through
	Recorder Recorder      // optional

	live  *poller.Scheduler
	chart *poller.Scheduler

	mu         sync.RWMutex
	holdings   []domain.Holding
	assets     []domain.Asset
	categories map[int64]domain.AssetCategory
	degraded   bool
	liveActive bool
}

// New builds the service and its two pollers: the live holdings view
// (reference cadence 3s) and the per-asset chart view (5s). Both stay IDLE
// until the corresponding view activates. The two schedules may poll
// overlapping ids; both merge last-write-wins into the same cache, which
// stays safe because merges are serialized per scheduler and a newer write
// simply supersedes.
func New(backend backendapi.Client, cache *prices.Cache, store *prices.Store, recorder Recorder, liveInterval, chartInterval time.Duration) *Service {
	s := &Service{
		Backend:    backend,
		Cache:      cache,
		Store:      store,
		Recorder:   recorder,
		categories: make(map[int64]domain.AssetCategory),
	}
	fetcher := &prices.Fetcher{Backend: backend}
	s.live = poller.New(liveInterval, fetcher.FetchPrices, s.applyLiveCycle)
	s.chart = poller.New(chartInterval, fetcher.FetchPrices, s.applyChartCycle)

	// Warm start: last-known prices from a previous run are better than an
	// empty cache while the first cycle is in flight.
	if seeded := store.Load(context.Background()); len(seeded) > 0 {
		cache.Seed(seeded)
		log.Info().Int("assets", len(seeded)).Msg("price cache warmed from store")
	}
	return s
}

// applyLiveCycle runs on the live poller's serialization path.
func (s *Service) applyLiveCycle(res poller.CycleResult) {
	// Total failure: every id failed or the cycle was unattemptable. The
	// cache keeps its last-known values and the snapshots turn stale.
	total := res.Failed || (res.Requested > 0 && len(res.Update) == 0)

	s.mu.Lock()
	s.degraded = total
	s.mu.Unlock()

	s.merge(res)
}

// applyChartCycle merges chart-view samples without touching the degraded
// flag, which tracks the holdings live view only.
func (s *Service) applyChartCycle(res poller.CycleResult) {
	s.merge(res)
}

func (s *Service) merge(res poller.CycleResult) {
	if len(res.Update) == 0 {
		return
	}
	s.Cache.Apply(res.Update, res.At)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Store.Save(ctx, s.Cache.Snapshot())

	if s.Recorder != nil {
		samples := make([]domain.PriceSample, 0, len(res.Update))
		for id, price := range res.Update {
			samples = append(samples, domain.PriceSample{AssetID: id, Price: price, ObservedAt: res.At})
		}
		s.Recorder.Record(samples)
	}
}

// Refresh reloads the holdings set and asset catalog from the backend.
// When the live view is active the schedule restarts against the new id
// set; cached prices for surviving ids are untouched.
func (s *Service) Refresh(ctx context.Context) error {
	holdings, err := s.Backend.GetHoldings(ctx)
	if err != nil {
		return fmt.Errorf("refresh holdings: %w", err)
	}
	assets, err := s.Backend.GetAssets(ctx)
	if err != nil {
		return fmt.Errorf("refresh assets: %w", err)
	}

	categories := make(map[int64]domain.AssetCategory, len(assets))
	for _, a := range assets {
		categories[a.ID] = a.Category
	}

	s.mu.Lock()
	s.holdings = holdings
	s.assets = assets
	s.categories = categories
	active := s.liveActive
	s.mu.Unlock()

	log.Info().Int("holdings", len(holdings)).Int("assets", len(assets)).Msg("holdings set refreshed")

	if active {
		s.live.Start(s.activeIDs())
	}
	return nil
}

// activeIDs is the id set the live schedule runs against.
func (s *Service) activeIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.holdings))
	for _, h := range s.holdings {
		if h.Active() {
			ids = append(ids, h.AssetID)
		}
	}
	return ids
}

// StartLive marks the live view active and starts polling the current
// holdings' assets. With no active holdings the scheduler stays IDLE.
func (s *Service) StartLive() {
	s.mu.Lock()
	s.liveActive = true
	s.mu.Unlock()
	s.live.Start(s.activeIDs())
}

// StopLive marks the live view inactive. In-flight fetch results are
// discarded, never merged.
func (s *Service) StopLive() {
	s.mu.Lock()
	s.liveActive = false
	s.mu.Unlock()
	s.live.Stop()
}

// StartChart activates the 5s chart schedule for one selected asset,
// replacing any previously selected one.
func (s *Service) StartChart(assetID int64) {
	s.chart.Start([]int64{assetID})
}

// StopChart deactivates the chart schedule.
func (s *Service) StopChart() {
	s.chart.Stop()
}

// Close terminates both pollers.
func (s *Service) Close() {
	s.live.Close()
	s.chart.Close()
}

// LiveState exposes the live scheduler state for health reporting.
func (s *Service) LiveState() poller.State {
	return s.live.State()
}

// ChartState exposes the chart scheduler state.
func (s *Service) ChartState() poller.State {
	return s.chart.State()
}

// Degraded reports whether the last poll cycle failed entirely.
func (s *Service) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Holdings returns the current holdings copy.
func (s *Service) Holdings() []domain.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

// Assets returns the current asset catalog copy.
func (s *Service) Assets() []domain.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

func (s *Service) categoryOf(assetID int64) domain.AssetCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.categories[assetID]; ok {
		return c
	}
	return domain.CategoryOther
}

// Valuation recomputes the valuation snapshot from the current holdings and
// price cache. Nothing is memoized across calls.
func (s *Service) Valuation() domain.ValuationSnapshot {
	snapshot := valuation.Valuate(s.Holdings(), s.Cache.Price)
	snapshot.Stale = s.Degraded()
	return snapshot
}

// Diversification recomputes the category exposure snapshot.
func (s *Service) Diversification() domain.DiversificationSnapshot {
	return valuation.Diversify(s.Holdings(), s.categoryOf, s.Cache.Price)
}

// LivePrices returns the cache view for the presentation layer.
func (s *Service) LivePrices() map[int64]domain.PriceSample {
	return s.Cache.Snapshot()
}

// Summary relays the backend's portfolio summary.
func (s *Service) Summary(ctx context.Context) (domain.PortfolioSummary, error) {
	return s.Backend.GetPortfolioSummary(ctx)
}

// Risk relays the backend's risk analysis; the scoring model is entirely
// backend-owned.
func (s *Service) Risk(ctx context.Context) (domain.RiskAnalysis, error) {
	return s.Backend.GetRiskAnalysis(ctx)
}

// RebalanceSuggestions relays the backend's generated rebalancing text.
func (s *Service) RebalanceSuggestions(ctx context.Context) (string, error) {
	return s.Backend.GetRebalanceSuggestions(ctx)
}

// CriticalAlerts relays backend-raised portfolio alerts.
func (s *Service) CriticalAlerts(ctx context.Context) ([]domain.CriticalAlert, error) {
	return s.Backend.GetCriticalAlerts(ctx)
}

// PriceHistory relays the backend's long-range daily history.
func (s *Service) PriceHistory(ctx context.Context, assetID int64) ([]domain.PricePoint, error) {
	return s.Backend.GetPriceHistory(ctx, assetID)
}

// Transactions relays the backend's transaction history.
func (s *Service) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.Backend.GetTransactions(ctx)
}
