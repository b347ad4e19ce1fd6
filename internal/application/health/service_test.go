package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okBackend(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestCollectHealth_AllDependenciesDown(t *testing.T) {
	result := CollectHealth(context.Background(), "", nil, nil, PollerStatus{LiveState: "IDLE"})

	assert.Equal(t, "degraded", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["backend"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.NotEmpty(t, result.Runtime.GoVersion)
}

func TestCollectHealth_BackendUp(t *testing.T) {
	result := CollectHealth(context.Background(), okBackend(t), nil, nil, PollerStatus{LiveState: "POLLING"})

	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["backend"].Status)
	assert.NotNil(t, result.Dependencies["backend"].PingMs)
}

func TestCollectHealth_DegradedPollerDemotesStatus(t *testing.T) {
	result := CollectHealth(context.Background(), okBackend(t), nil, nil, PollerStatus{
		LiveState: "POLLING",
		Degraded:  true,
	})
	assert.Equal(t, "degraded", result.Status, "stale snapshots are reported, not hidden")
}

func TestCollectHealth_WithMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	result := CollectHealth(context.Background(), okBackend(t), rdb, nil, PollerStatus{})
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)

	mr.Close()
	result = CollectHealth(context.Background(), okBackend(t), rdb, nil, PollerStatus{})
	assert.Equal(t, "error", result.Dependencies["redis"].Status)
}

type pinger struct{ err error }

func (p pinger) Ping() error { return p.err }

func TestCollectHealth_DatabasePing(t *testing.T) {
	result := CollectHealth(context.Background(), okBackend(t), nil, pinger{}, PollerStatus{})
	assert.Equal(t, "connected", result.Dependencies["database"].Status)

	result = CollectHealth(context.Background(), okBackend(t), nil, pinger{err: context.DeadlineExceeded}, PollerStatus{})
	assert.Equal(t, "error", result.Dependencies["database"].Status)
	assert.Equal(t, "ok", result.Status, "a local journal outage alone does not degrade the gateway")
}
