package requestlimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medcalc/internal/ratelimit/config"
	"medcalc/internal/ratelimit/metrics"
	"medcalc/internal/ratelimit/models"
	"medcalc/internal/ratelimit/ports"
	dErrors "medcalc/pkg/domain-errors"
	"medcalc/pkg/platform/privacy"
	"medcalc/pkg/requestcontext"
)

// BucketStore is re-exported so callers need not import ports.
type BucketStore = ports.BucketStore

// unconfiguredRetryAfter is the retry hint for classes with no limit.
const unconfiguredRetryAfter = 60

type Service struct {
	buckets BucketStore
	logger  *slog.Logger
	config  *config.Config
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}

	svc := &Service{
		buckets: buckets,
		config:  config.DefaultConfig(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CheckIP consumes one request from the IP's window for class. A class with
// no configured limit is denied.
func (s *Service) CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	now := requestcontext.Now(ctx)

	requestsPerWindow, window, ok := s.config.GetIPLimit(class)
	if !ok {
		s.logger.WarnContext(ctx, "rate_limit_config_missing",
			"ip_prefix", privacy.AnonymizeIP(ip),
			"endpoint_class", class,
			"request_id", requestcontext.RequestID(ctx),
		)
		s.metrics.RecordCheck(string(class), metrics.OutcomeDenied)
		return &models.RateLimitResult{
			Allowed:    false,
			ResetAt:    now.Add(unconfiguredRetryAfter * time.Second),
			RetryAfter: unconfiguredRetryAfter,
		}, nil
	}

	key := models.NewRateLimitKey(models.KeyPrefixIP, ip, class)
	result, err := s.buckets.Allow(ctx, key.String(), requestsPerWindow, window)
	if err != nil {
		s.metrics.IncrementStoreErrors()
		s.metrics.RecordCheck(string(class), metrics.OutcomeError)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to check rate limit")
	}

	if !result.Allowed {
		s.metrics.RecordCheck(string(class), metrics.OutcomeDenied)
		s.logger.InfoContext(ctx, "ip_rate_limit_exceeded",
			"ip_prefix", privacy.AnonymizeIP(ip),
			"endpoint_class", class,
			"limit", requestsPerWindow,
			"window_seconds", int(window.Seconds()),
			"request_id", requestcontext.RequestID(ctx),
		)
		return result, nil
	}
	s.metrics.RecordCheck(string(class), metrics.OutcomeAllowed)
	return result, nil
}
