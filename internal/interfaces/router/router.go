package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	historysvc "github.com/undercop/finfinal/internal/application/history"
	portfoliosvc "github.com/undercop/finfinal/internal/application/portfolio"
	tradesvc "github.com/undercop/finfinal/internal/application/trading"
	"github.com/undercop/finfinal/internal/backendapi"
	"github.com/undercop/finfinal/internal/config"
	"github.com/undercop/finfinal/internal/infrastructure/database"
	healthhandler "github.com/undercop/finfinal/internal/interfaces/handlers/health"
	portfoliohandler "github.com/undercop/finfinal/internal/interfaces/handlers/portfolio"
	priceshandler "github.com/undercop/finfinal/internal/interfaces/handlers/prices"
	riskhandler "github.com/undercop/finfinal/internal/interfaces/handlers/risk"
	tradehandler "github.com/undercop/finfinal/internal/interfaces/handlers/trading"
	txhandler "github.com/undercop/finfinal/internal/interfaces/handlers/transactions"
	"github.com/undercop/finfinal/internal/middleware"
	"github.com/undercop/finfinal/internal/prices"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// App bundles the Fiber app with the services main needs for shutdown.
type App struct {
	Fiber     *fiber.App
	Portfolio *portfoliosvc.Service
	DB        *gorm.DB
	Rdb       *redis.Client
	stopPrune context.CancelFunc
}

// CreateApp builds the Fiber app with all middleware, services and routes.
func CreateApp(cfg *config.Config) (*App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// Optional Redis price store; the gateway runs fine without it, it just
	// starts with a cold cache.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		rdb = redis.NewClient(opt)
	}

	// Local store for intraday samples and the trade journal.
	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	backend := backendapi.NewHTTPClient(cfg.BackendURL, cfg.BackendTimeout)

	history := &historysvc.Service{DB: db, Backend: backend}
	cache := prices.NewCache()
	store := &prices.Store{Rdb: rdb}
	portfolio := portfoliosvc.New(backend, cache, store, history, cfg.LivePollInterval, cfg.IntradayInterval)
	trading := tradesvc.New(backend, portfolio, db)

	// Initial load. The backend being down is not fatal: the gateway comes
	// up degraded and serves whatever the warm-started cache has.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout)
	if err := portfolio.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial holdings load failed; starting degraded")
	}
	cancel()

	pruneCtx, stopPrune := context.WithCancel(context.Background())
	history.StartPruner(pruneCtx, time.Hour)

	// --- Routes ---
	healthHandlers := &healthhandler.Handlers{
		BackendURL: cfg.BackendURL,
		Rdb:        rdb,
		DB:         &gormDBPinger{db: db},
		Portfolio:  portfolio,
	}
	app.Get("/health/json", healthHandlers.JSON)

	portfolioHandlers := &portfoliohandler.Handlers{Service: portfolio}
	pg := app.Group("/api/v1")
	pg.Get("/portfolio/valuation", portfolioHandlers.Valuation)
	pg.Get("/portfolio/diversification", portfolioHandlers.Diversification)
	pg.Get("/portfolio/summary", portfolioHandlers.Summary)
	pg.Post("/portfolio/refresh", portfolioHandlers.Refresh)
	pg.Get("/holdings", portfolioHandlers.Holdings)
	pg.Get("/assets", portfolioHandlers.Assets)
	pg.Post("/live/start", portfolioHandlers.StartLive)
	pg.Post("/live/stop", portfolioHandlers.StopLive)

	pricesHandlers := &priceshandler.Handlers{Portfolio: portfolio, History: history}
	pg.Get("/prices/live", pricesHandlers.Live)
	pg.Get("/prices/intraday/:assetId", pricesHandlers.Intraday)
	pg.Get("/prices/history/:assetId", pricesHandlers.History365)
	pg.Post("/prices/chart/:assetId/start", pricesHandlers.StartChart)
	pg.Post("/prices/chart/stop", pricesHandlers.StopChart)

	tradeHandlers := &tradehandler.Handlers{Service: trading}
	pg.Post("/trades", tradeHandlers.PlaceTrade)
	pg.Get("/trades/journal", tradeHandlers.Journal)

	txHandlers := &txhandler.Handlers{Portfolio: portfolio}
	pg.Get("/transactions", txHandlers.GetTransactions)

	riskHandlers := &riskhandler.Handlers{Portfolio: portfolio}
	pg.Get("/risk", riskHandlers.Analysis)
	pg.Get("/risk/rebalance", riskHandlers.Rebalance)
	pg.Get("/alerts/critical", riskHandlers.CriticalAlerts)

	return &App{Fiber: app, Portfolio: portfolio, DB: db, Rdb: rdb, stopPrune: stopPrune}, nil
}

// Shutdown stops the pollers, the pruner and the HTTP server.
func (a *App) Shutdown() error {
	a.Portfolio.Close()
	if a.stopPrune != nil {
		a.stopPrune()
	}
	return a.Fiber.Shutdown()
}
