package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"medcalc/internal/platform/config"
	"medcalc/pkg/platform/middleware/requestid"
	"medcalc/pkg/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildApp(t *testing.T, mutate func(*config.Server)) *application {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	app, err := build(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(app.close)
	return app
}

func TestBuild(t *testing.T) {
	t.Run("missing required calculator stops startup", func(t *testing.T) {
		cfg := config.Default()
		cfg.RequiredCalculators = []string{"anion_gap", "apache_ii"}
		_, err := build(context.Background(), cfg, discardLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "apache_ii")
	})

	t.Run("required calculators present", func(t *testing.T) {
		app := buildApp(t, func(c *config.Server) {
			c.RequiredCalculators = []string{"anion_gap", "meld_na", "bmi"}
		})
		assert.Positive(t, app.catalogSize)
		assert.Equal(t, "memory", app.storeName)
	})
}

func TestRouter(t *testing.T) {
	app := buildApp(t, func(c *config.Server) {
		c.RateLimit.Requests = 3
	})

	t.Run("healthz", func(t *testing.T) {
		rr := testutil.DoRequest(app.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[HealthResponse](t, rr)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, app.catalogSize, resp.Calculators)
		assert.Empty(t, resp.Redis)
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/healthz")
		req.Header.Set(requestid.Header, "trace-123")
		rr := testutil.DoRequest(app.router, req)
		assert.Equal(t, "trace-123", rr.Header().Get(requestid.Header))
	})

	t.Run("dispatch is rate limited per client", func(t *testing.T) {
		call := func() int {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/calculators/anion_gap/run", map[string]any{
				"inputs": map[string]any{"na": 140, "cl": 104, "hco3": 24},
			})
			req.RemoteAddr = "203.0.113.9:40000"
			return testutil.DoRequest(app.router, req).Code
		}
		for range 3 {
			assert.Equal(t, http.StatusOK, call())
		}
		assert.Equal(t, http.StatusTooManyRequests, call())
	})

	t.Run("catalog reads use their own budget", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/calculators")
		req.RemoteAddr = "203.0.113.9:40000"
		rr := testutil.DoRequest(app.router, req)
		testutil.AssertStatusOK(t, rr)
		assert.Equal(t, "600", rr.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("metrics include dispatch counters", func(t *testing.T) {
		rr := testutil.DoRequest(app.router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
		body := rr.Body.String()
		assert.Contains(t, body, `medcalc_calculator_runs_total{calculator="anion_gap",outcome="ok"} 3`)
		assert.Contains(t, body, "medcalc_ratelimit_checks_total")
		assert.Contains(t, body, "medcalc_catalog_calculators")
	})
}

func TestRateLimitCanBeDisabled(t *testing.T) {
	app := buildApp(t, func(c *config.Server) {
		c.RateLimit = config.RateLimitConfig{Enabled: false, Requests: 1, Window: time.Minute}
	})
	for range 3 {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/run", map[string]any{
			"name":   "bmi",
			"inputs": map[string]any{"weight_kg": 70, "height_cm": 175},
		})
		rr := testutil.DoRequest(app.router, req)
		testutil.AssertStatusOK(t, rr)
		assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	}
}

type downRedis struct{}

func (downRedis) Health(context.Context) error { return errors.New("dial tcp: connection refused") }

func TestHealthReportsRedisOutage(t *testing.T) {
	d := routerDeps{redis: downRedis{}, catalogSize: 1, logger: discardLogger()}
	rr := testutil.DoRequest(http.HandlerFunc(d.handleHealth), testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	resp := testutil.UnmarshalResponse[HealthResponse](t, rr)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unavailable", resp.Redis)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	t.Setenv("MEDCALC_ADDR", "127.0.0.1:0")
	t.Setenv("MEDCALC_LOG_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Setenv("MEDCALC_LOG_FORMAT", "xml")
	err := run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "load config"))
}
