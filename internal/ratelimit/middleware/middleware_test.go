package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"medcalc/internal/ratelimit/config"
	"medcalc/internal/ratelimit/metrics"
	"medcalc/internal/ratelimit/models"
	"medcalc/internal/ratelimit/service/requestlimit"
	"medcalc/internal/ratelimit/store/bucket"
	"medcalc/pkg/platform/circuit"
	"medcalc/pkg/platform/middleware/metadata"
	"medcalc/pkg/testutil"
)

// flakyStore delegates to an in-memory store until it is switched off.
type flakyStore struct {
	*bucket.InMemoryBucketStore
	down atomic.Bool
}

func (f *flakyStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	if f.down.Load() {
		return nil, errors.New("redis: connection refused")
	}
	return f.InMemoryBucketStore.Allow(ctx, key, limit, window)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequestLimiter(t *testing.T, store requestlimit.BucketStore, limit int) *requestlimit.Service {
	t.Helper()
	svc, err := requestlimit.New(store, requestlimit.WithConfig(config.DefaultConfig().WithDispatchLimit(limit, time.Minute)))
	require.NoError(t, err)
	return svc
}

type RateLimitMiddlewareSuite struct {
	suite.Suite
	store  *flakyStore
	router http.Handler
}

func TestRateLimitMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(RateLimitMiddlewareSuite))
}

func (s *RateLimitMiddlewareSuite) SetupTest() {
	s.store = &flakyStore{InMemoryBucketStore: bucket.New()}
	limiter := NewLimiter(newRequestLimiter(s.T(), s.store, 2))
	mw := New(limiter, discardLogger())

	r := chi.NewRouter()
	r.Use(metadata.ClientMetadata)
	r.With(mw.RateLimit(models.ClassDispatch)).Post("/run", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.router = r
}

func (s *RateLimitMiddlewareSuite) call(ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	req.RemoteAddr = ip + ":51234"
	return testutil.DoRequest(s.router, req)
}

func (s *RateLimitMiddlewareSuite) TestHeadersOnAllowedRequest() {
	rr := s.call("192.0.2.10")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("2", rr.Header().Get("X-RateLimit-Limit"))
	s.Equal("1", rr.Header().Get("X-RateLimit-Remaining"))
	s.NotEmpty(rr.Header().Get("X-RateLimit-Reset"))
	s.Empty(rr.Header().Get(StatusHeader))
}

func (s *RateLimitMiddlewareSuite) TestExceededReturns429() {
	s.call("192.0.2.11")
	s.call("192.0.2.11")
	rr := s.call("192.0.2.11")

	s.Equal(http.StatusTooManyRequests, rr.Code)
	s.Equal("60", rr.Header().Get("Retry-After"))
	s.Equal("0", rr.Header().Get("X-RateLimit-Remaining"))
	testutil.AssertJSONContains(s.T(), rr, "error", models.ErrorRateLimitExceeded)
	testutil.AssertJSONContains(s.T(), rr, "class", "dispatch")
	testutil.AssertJSONContains(s.T(), rr, "retry_after", 60.0)

	s.Equal(http.StatusOK, s.call("192.0.2.12").Code, "other clients keep their own budget")
}

func (s *RateLimitMiddlewareSuite) TestStoreFailureFailsOpen() {
	s.store.down.Store(true)
	for range 5 {
		rr := s.call("192.0.2.13")
		s.Equal(http.StatusOK, rr.Code)
		s.Empty(rr.Header().Get("X-RateLimit-Limit"))
	}
}

func (s *RateLimitMiddlewareSuite) TestUsesClientIPFromContext() {
	limiter := NewLimiter(newRequestLimiter(s.T(), bucket.New(), 1))
	h := New(limiter, discardLogger()).RateLimit(models.ClassDispatch)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := testutil.WithClientIP(httptest.NewRequest(http.MethodPost, "/run", nil), "192.0.2.30")
	s.Equal(http.StatusOK, testutil.DoRequest(h, first).Code)

	second := testutil.WithClientIP(httptest.NewRequest(http.MethodPost, "/run", nil), "192.0.2.30")
	s.Equal(http.StatusTooManyRequests, testutil.DoRequest(h, second).Code)
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
	mw := New(nil, discardLogger(), WithDisabled(true))
	h := mw.RateLimit(models.ClassDispatch)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := testutil.DoRequest(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestExceededMessageNamesTheClass(t *testing.T) {
	assert.Contains(t, exceededMessage(models.ClassDispatch), "calculator runs")
	assert.Contains(t, exceededMessage(models.ClassRead), "catalog requests")
	assert.Contains(t, exceededMessage(models.EndpointClass("other")), "Too many requests")
}

func TestLimiterFallback(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{InMemoryBucketStore: bucket.New()}
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	breaker := circuit.New("ratelimit", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(2))
	limiter := NewLimiter(newRequestLimiter(t, store, 100),
		WithFallback(newRequestLimiter(t, bucket.New(), 100), breaker),
		WithLimiterMetrics(m),
		WithLimiterLogger(discardLogger()),
	)

	testutil.Given(t, "a healthy store", func(t *testing.T) {
		res, err := limiter.CheckIPRateLimit(ctx, "192.0.2.20", models.ClassDispatch)
		require.NoError(t, err)
		assert.False(t, res.Degraded)
	})

	store.down.Store(true)
	testutil.When(t, "failures stay under the threshold", func(t *testing.T) {
		_, err := limiter.CheckIPRateLimit(ctx, "192.0.2.20", models.ClassDispatch)
		require.Error(t, err)
		assert.False(t, breaker.IsOpen())
	})

	testutil.When(t, "the threshold is reached", func(t *testing.T) {
		res, err := limiter.CheckIPRateLimit(ctx, "192.0.2.20", models.ClassDispatch)
		require.NoError(t, err)
		assert.True(t, res.Degraded)
		assert.True(t, breaker.IsOpen())
		assert.Equal(t, 1.0, promtest.ToFloat64(m.Degraded))
	})

	store.down.Store(false)
	testutil.Then(t, "the primary must succeed twice before it is trusted again", func(t *testing.T) {
		res, err := limiter.CheckIPRateLimit(ctx, "192.0.2.20", models.ClassDispatch)
		require.NoError(t, err)
		assert.True(t, res.Degraded)

		res, err = limiter.CheckIPRateLimit(ctx, "192.0.2.20", models.ClassDispatch)
		require.NoError(t, err)
		assert.False(t, res.Degraded)
		assert.False(t, breaker.IsOpen())
		assert.Equal(t, 0.0, promtest.ToFloat64(m.Degraded))
	})
}
