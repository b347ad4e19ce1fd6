package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for the health check. If nil, the local store is
// reported as disconnected.
type DBPinger interface {
	Ping() error
}

// PollerStatus reports the scheduler states and the degraded flag.
type PollerStatus struct {
	LiveState  string `json:"liveState"`
	ChartState string `json:"chartState"`
	Degraded   bool   `json:"degraded"`
	CachedIDs  int    `json:"cachedIds"`
}

// CollectResult is the /health/json payload.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Poller       PollerStatus         `json:"poller"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Goroutines    int    `json:"goroutines"`
	GoVersion     string `json:"goVersion"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

var startedAt = time.Now()

// CollectHealth gathers dependency status: the investment backend, the
// optional Redis price store and the local database. A degraded poller or a
// down backend demotes overall status to "degraded" rather than erroring;
// stale data is still served.
func CollectHealth(ctx context.Context, backendURL string, rdb *redis.Client, db DBPinger, poller PollerStatus) CollectResult {
	result := CollectResult{
		Poller:       poller,
		Dependencies: make(map[string]DepStatus),
	}

	// Investment backend
	backendStatus := "disconnected"
	var backendPing interface{}
	if backendURL != "" {
		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, backendURL+"/api/assets", nil)
		if err == nil {
			resp, err := (&http.Client{Timeout: 3 * time.Second}).Do(req)
			if err == nil {
				resp.Body.Close()
				backendPing = time.Since(start).Milliseconds()
				if resp.StatusCode < 500 {
					backendStatus = "connected"
				} else {
					backendStatus = "error"
				}
			} else {
				backendStatus = "error"
			}
		}
	}
	result.Dependencies["backend"] = DepStatus{Status: backendStatus, PingMs: backendPing}

	// Redis price store (optional)
	redisStatus := "disconnected"
	var redisPing interface{}
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			redisPing = time.Since(start).Milliseconds()
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPing}

	// Local database
	dbStatus := "disconnected"
	var dbPing interface{}
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			dbPing = time.Since(start).Milliseconds()
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPing}

	result.Runtime = RuntimeInfo{
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		GoVersion:     runtime.Version(),
	}

	switch {
	case backendStatus != "connected" || poller.Degraded:
		result.Status = "degraded"
	default:
		result.Status = "ok"
	}
	return result
}
