package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/dart-stats/app/modules/game"
	"github.com/Black-And-White-Club/dart-stats/config"
	"github.com/Black-And-White-Club/dart-stats/internal/httpmw"
	"github.com/Black-And-White-Club/dart-stats/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	obs, err := observability.New(observability.Config{LogFormat: "text"}, &bytes.Buffer{})
	require.NoError(t, err)

	gm, err := game.NewGameModule(context.Background(), obs, game.Deps{})
	require.NoError(t, err)

	return &App{
		Config: &config.Config{HTTP: config.HTTPConfig{
			RateLimitRPS:   1,
			RateLimitBurst: 1,
		}},
		Observability: obs,
		GameModule:    gm,
	}
}

func TestApp_Healthz(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(httpmw.CorrelationIDHeader))
}

func TestApp_Metrics(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestApp_APIIsRateLimited(t *testing.T) {
	h := newTestApp(t).Handler()

	// Invalid limits are rejected before the service runs, so no database is needed.
	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/users/u1/games?limit=abc", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusTooManyRequests}, codes)

	// Health checks are not rate limited.
	for range 3 {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}
