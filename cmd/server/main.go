package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"medcalc/internal/calculator"
	calcHandler "medcalc/internal/calculator/handler"
	calcMetrics "medcalc/internal/calculator/metrics"
	"medcalc/internal/calculator/service"
	"medcalc/internal/calculators"
	"medcalc/internal/platform/config"
	"medcalc/internal/platform/httpserver"
	"medcalc/internal/platform/logger"
	"medcalc/internal/platform/metrics"
	redisClient "medcalc/internal/platform/redis"
	rlConfig "medcalc/internal/ratelimit/config"
	rlMetrics "medcalc/internal/ratelimit/metrics"
	rlMiddleware "medcalc/internal/ratelimit/middleware"
	"medcalc/internal/ratelimit/service/requestlimit"
	"medcalc/internal/ratelimit/store/bucket"
	"medcalc/pkg/platform/circuit"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "medcalc:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	app, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.close()

	srv := httpserver.New(cfg.Addr, app.router)
	log.Info("starting medcalc",
		"addr", cfg.Addr,
		"version", version,
		"calculators", app.catalogSize,
		"rate_limit_store", app.storeName,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.ListenAndRun(gctx, srv, cfg.ShutdownTimeout, log)
	})
	if app.sweep != nil {
		g.Go(func() error {
			app.sweep(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("medcalc stopped")
	return nil
}

type application struct {
	router      http.Handler
	catalogSize int
	storeName   string
	sweep       func(context.Context)
	close       func()
}

// build assembles the catalog, services and router. Startup fails when the
// catalog cannot be registered or a required calculator is missing.
func build(ctx context.Context, cfg config.Server, log *slog.Logger) (*application, error) {
	registry, err := calculators.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("register calculators: %w", err)
	}
	if err := registry.Require(cfg.RequiredCalculators...); err != nil {
		return nil, fmt.Errorf("required calculators: %w", err)
	}
	engine := calculator.NewEngine(registry)

	m := metrics.New()
	m.SetBuildInfo(version)
	m.SetCatalogSize(registry.Len())

	svc, err := service.New(engine,
		service.WithLogger(log),
		service.WithMetrics(calcMetrics.NewWithRegisterer(m.Registerer())),
		service.WithDefaultPrecision(cfg.DefaultPrecision),
		service.WithBatchConcurrency(cfg.BatchConcurrency),
	)
	if err != nil {
		return nil, err
	}

	app := &application{catalogSize: registry.Len(), storeName: "memory", close: func() {}}

	rlm := rlMetrics.NewWithRegisterer(m.Registerer())
	limits := rlConfig.DefaultConfig().WithDispatchLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	memory := bucket.New()
	local, err := requestlimit.New(memory,
		requestlimit.WithConfig(limits),
		requestlimit.WithMetrics(rlm),
		requestlimit.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	limiter := rlMiddleware.NewLimiter(local, rlMiddleware.WithLimiterLogger(log))
	app.sweep = sweeper(memory, cfg.RateLimit.Window, log)

	deps := routerDeps{
		calculators: calcHandler.New(svc, log),
		metrics:     m.Handler(),
		catalogSize: registry.Len(),
		logger:      log,
	}

	rc, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rc != nil {
		shared, err := requestlimit.New(bucket.NewRedis(rc.Client),
			requestlimit.WithConfig(limits),
			requestlimit.WithMetrics(rlm),
			requestlimit.WithLogger(log),
		)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		limiter = rlMiddleware.NewLimiter(shared,
			rlMiddleware.WithFallback(local, circuit.New("redis-ratelimit")),
			rlMiddleware.WithLimiterMetrics(rlm),
			rlMiddleware.WithLimiterLogger(log),
		)
		deps.redis = rc
		app.storeName = "redis"
		app.close = func() { _ = rc.Close() }
	}

	deps.rateLimit = rlMiddleware.New(limiter, log, rlMiddleware.WithDisabled(!cfg.RateLimit.Enabled))
	app.router = newRouter(deps)
	return app, nil
}

// sweeper drops idle in-memory windows once per window length.
func sweeper(store *bucket.InMemoryBucketStore, window time.Duration, log *slog.Logger) func(context.Context) {
	if window <= 0 {
		window = time.Minute
	}
	return func(ctx context.Context) {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := store.Sweep(); n > 0 {
					log.Debug("swept idle rate limit windows", "removed", n, "remaining", store.Len())
				}
			}
		}
	}
}
