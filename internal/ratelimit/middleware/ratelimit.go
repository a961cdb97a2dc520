package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"medcalc/internal/ratelimit/models"
	"medcalc/pkg/platform/httputil"
	metadata "medcalc/pkg/platform/middleware/metadata"
	"medcalc/pkg/platform/privacy"
	"medcalc/pkg/requestcontext"
)

// Response headers. StatusHeader is "degraded" when the in-memory fallback
// answered instead of the primary store.
const (
	LimitHeader      = "X-RateLimit-Limit"
	RemainingHeader  = "X-RateLimit-Remaining"
	ResetHeader      = "X-RateLimit-Reset"
	StatusHeader     = "X-RateLimit-Status"
	RetryAfterHeader = "Retry-After"
)

// RateLimiter answers whether ip may make another request of class.
type RateLimiter interface {
	CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error)
}

// Middleware guards calculator routes with per-IP budgets.
type Middleware struct {
	limiter  RateLimiter
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns every RateLimit wrapper into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Warn("rate limiting disabled; calculator routes are unthrottled")
	}
	return m
}

// RateLimit enforces the per-IP budget of class. Limiter errors fail open.
func (m *Middleware) RateLimit(class models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m.disabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := metadata.GetClientIP(ctx)

			result, err := m.limiter.CheckIPRateLimit(ctx, ip, class)
			if err != nil {
				m.logger.ErrorContext(ctx, "rate limit check failed; letting request through",
					"error", err,
					"class", class,
					"ip_prefix", privacy.AnonymizeIP(ip),
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			setHeaders(w, result)
			if !result.Allowed {
				m.logger.DebugContext(ctx, "calculator request throttled",
					"class", class,
					"path", r.URL.Path,
					"retry_after", result.RetryAfter,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeExceeded(w, class, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	if result == nil {
		return
	}
	h := w.Header()
	h.Set(LimitHeader, strconv.Itoa(result.Limit))
	h.Set(RemainingHeader, strconv.Itoa(result.Remaining))
	h.Set(ResetHeader, strconv.FormatInt(result.ResetAt.Unix(), 10))
	if result.Degraded {
		h.Set(StatusHeader, "degraded")
	}
}

func writeExceeded(w http.ResponseWriter, class models.EndpointClass, result *models.RateLimitResult) {
	w.Header().Set(RetryAfterHeader, strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      models.ErrorRateLimitExceeded,
		Class:      class,
		Message:    exceededMessage(class),
		RetryAfter: result.RetryAfter,
	})
}

func exceededMessage(class models.EndpointClass) string {
	switch class {
	case models.ClassDispatch:
		return "Too many calculator runs from this address. Retry after the indicated delay."
	case models.ClassRead:
		return "Too many catalog requests from this address. Retry after the indicated delay."
	default:
		return "Too many requests from this address. Retry after the indicated delay."
	}
}
