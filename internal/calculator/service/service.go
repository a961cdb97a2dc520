// Package service exposes the calculator engine to transports. It adds
// request-scoped logging, metrics, tracing, default precision and batch
// dispatch around the pure engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"medcalc/internal/calculator"
	"medcalc/internal/calculator/metrics"
	dErrors "medcalc/pkg/domain-errors"
	"medcalc/pkg/platform/sentinel"
	"medcalc/pkg/requestcontext"
)

const (
	// MaxBatchSize bounds the calls accepted by RunBatch.
	MaxBatchSize            = 50
	defaultBatchConcurrency = 8
	tracerName              = "medcalc/internal/calculator/service"
)

// RunRequest is a single dispatch call.
type RunRequest struct {
	Name      string
	Inputs    map[string]any
	Precision *int
}

// Service dispatches calculator calls through the engine.
type Service struct {
	engine           *calculator.Engine
	logger           *slog.Logger
	metrics          *metrics.Metrics
	tracer           trace.Tracer
	defaultPrecision *int
	batchConcurrency int
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithDefaultPrecision rounds results to digits when a request names no
// precision. A nil value leaves results unrounded.
func WithDefaultPrecision(digits *int) Option {
	return func(s *Service) {
		s.defaultPrecision = digits
	}
}

// WithBatchConcurrency caps how many batch calls run at once.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// New builds a Service over engine.
func New(engine *calculator.Engine, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, errors.New("calculator engine is required")
	}
	svc := &Service{
		engine:           engine,
		logger:           slog.Default(),
		tracer:           otel.Tracer(tracerName),
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Run dispatches one call. Engine failures are reported in the envelope, never
// as a Go error.
func (s *Service) Run(ctx context.Context, req RunRequest) calculator.Envelope {
	ctx, span := s.tracer.Start(ctx, "calculator.run",
		trace.WithAttributes(attribute.String("calculator.id", req.Name)))
	defer span.End()

	start := time.Now()
	precision := req.Precision
	if precision == nil {
		precision = s.defaultPrecision
	}
	env := s.engine.Run(req.Name, req.Inputs, calculator.WithOptionalPrecision(precision))
	elapsed := time.Since(start)

	outcome := Outcome(env)
	s.metrics.ObserveRun(req.Name, outcome, elapsed)
	span.SetAttributes(attribute.String("calculator.outcome", outcome))

	requestID := requestcontext.RequestID(ctx)
	switch env.Error {
	case calculator.ErrUnknownCalculator:
		span.SetStatus(codes.Error, string(env.Error))
		s.logger.WarnContext(ctx, "unknown calculator requested",
			"request_id", requestID,
			"calculator_id", req.Name,
		)
	case calculator.ErrInvalidInput:
		span.SetStatus(codes.Error, string(env.Error))
		s.logger.InfoContext(ctx, "calculator input rejected",
			"request_id", requestID,
			"calculator_id", req.Name,
			"missing", env.Missing,
		)
	default:
		s.logger.DebugContext(ctx, "calculator evaluated",
			"request_id", requestID,
			"calculator_id", req.Name,
			"outcome", outcome,
			"duration_us", elapsed.Microseconds(),
		)
	}
	return env
}

// RunBatch dispatches calls concurrently and returns envelopes in request
// order. It fails only when the batch itself is unacceptable or ctx ends.
func (s *Service) RunBatch(ctx context.Context, reqs []RunRequest) ([]calculator.Envelope, error) {
	if len(reqs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "calls is required")
	}
	if len(reqs) > MaxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("batch exceeds %d calls", MaxBatchSize))
	}
	s.metrics.ObserveBatch(len(reqs))

	results := make([]calculator.Envelope, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Run(gctx, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch dispatch interrupted")
	}
	return results, nil
}

// List returns every registered calculator sorted by identifier.
func (s *Service) List(_ context.Context) []calculator.Summary {
	defs := s.engine.Registry().List()
	out := make([]calculator.Summary, len(defs))
	for i, def := range defs {
		out[i] = def.Summary()
	}
	return out
}

// Describe returns the declared inputs of one calculator.
func (s *Service) Describe(_ context.Context, id string) (calculator.Descriptor, error) {
	def, ok := s.engine.Registry().Lookup(id)
	if !ok {
		return calculator.Descriptor{}, dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound,
			fmt.Sprintf("calculator %q not found", id))
	}
	return def.Describe(), nil
}

// Outcome labels an envelope for metrics and logs. A successful envelope whose
// result reports valid:false is not_applicable.
func Outcome(env calculator.Envelope) string {
	switch env.Error {
	case calculator.ErrUnknownCalculator:
		return metrics.OutcomeUnknownCalculator
	case calculator.ErrInvalidInput:
		return metrics.OutcomeInvalidInput
	}
	if valid, ok := env.Result["valid"].(bool); ok && !valid {
		return metrics.OutcomeNotApplicable
	}
	return metrics.OutcomeOK
}
