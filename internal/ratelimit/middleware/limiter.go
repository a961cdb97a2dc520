package middleware

import (
	"context"
	"log/slog"

	"medcalc/internal/ratelimit/metrics"
	"medcalc/internal/ratelimit/models"
	"medcalc/internal/ratelimit/service/requestlimit"
	"medcalc/pkg/platform/circuit"
)

// Limiter implements RateLimiter on top of a primary request limiter,
// usually Redis backed, with an optional in-memory fallback guarded by a
// circuit breaker.
type Limiter struct {
	primary  *requestlimit.Service
	fallback *requestlimit.Service
	breaker  *circuit.Breaker
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter)

// WithFallback serves checks from fallback while the breaker is open.
func WithFallback(fallback *requestlimit.Service, breaker *circuit.Breaker) LimiterOption {
	return func(l *Limiter) {
		l.fallback = fallback
		l.breaker = breaker
	}
}

func WithLimiterMetrics(m *metrics.Metrics) LimiterOption {
	return func(l *Limiter) {
		l.metrics = m
	}
}

func WithLimiterLogger(logger *slog.Logger) LimiterOption {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// NewLimiter creates a Limiter around primary.
func NewLimiter(primary *requestlimit.Service, opts ...LimiterOption) *Limiter {
	l := &Limiter{primary: primary, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(l)
	}
	if l.fallback != nil && l.breaker == nil {
		l.breaker = circuit.New("ratelimit")
	}
	return l
}

// CheckIPRateLimit checks the primary limiter. The primary is consulted on every
// call so the breaker can close once it recovers.
func (l *Limiter) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	res, err := l.primary.CheckIP(ctx, ip, class)
	if l.fallback == nil {
		return res, err
	}

	if err != nil {
		useFallback, change := l.breaker.RecordFailure()
		if change.Opened {
			l.logger.WarnContext(ctx, "rate limit store unavailable, using in-memory fallback",
				"breaker", l.breaker.Name(),
				"error", err,
			)
			l.metrics.SetDegraded(true)
		}
		if !useFallback {
			return nil, err
		}
		return l.checkFallback(ctx, ip, class)
	}

	usePrimary, change := l.breaker.RecordSuccess()
	if change.Closed {
		l.logger.InfoContext(ctx, "rate limit store recovered", "breaker", l.breaker.Name())
		l.metrics.SetDegraded(false)
	}
	if !usePrimary {
		return l.checkFallback(ctx, ip, class)
	}
	return res, nil
}

func (l *Limiter) checkFallback(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	res, err := l.fallback.CheckIP(ctx, ip, class)
	if err != nil {
		return nil, err
	}
	res.Degraded = true
	return res, nil
}
