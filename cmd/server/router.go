package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	calcHandler "medcalc/internal/calculator/handler"
	rlMiddleware "medcalc/internal/ratelimit/middleware"
	"medcalc/internal/ratelimit/models"
	"medcalc/pkg/platform/httputil"
	metadata "medcalc/pkg/platform/middleware/metadata"
	"medcalc/pkg/platform/middleware/requestid"
	requesttime "medcalc/pkg/platform/middleware/requesttime"
)

// healthChecker is satisfied by the Redis client.
type healthChecker interface {
	Health(ctx context.Context) error
}

type routerDeps struct {
	calculators *calcHandler.Handler
	rateLimit   *rlMiddleware.Middleware
	metrics     http.Handler
	redis       healthChecker
	catalogSize int
	logger      *slog.Logger
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status      string `json:"status"`
	Calculators int    `json:"calculators"`
	Redis       string `json:"redis,omitempty"`
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	r.Get("/healthz", d.handleHealth)
	r.Method(http.MethodGet, "/metrics", d.metrics)

	r.Group(func(r chi.Router) {
		r.Use(d.rateLimit.RateLimit(models.ClassRead))
		d.calculators.Register(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(d.rateLimit.RateLimit(models.ClassDispatch))
		d.calculators.RegisterDispatch(r)
	})
	return r
}

func (d routerDeps) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Calculators: d.catalogSize}
	status := http.StatusOK
	if d.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		resp.Redis = "ok"
		if err := d.redis.Health(ctx); err != nil {
			d.logger.WarnContext(ctx, "redis health check failed", "error", err)
			resp.Status = "degraded"
			resp.Redis = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	httputil.WriteJSON(w, status, resp)
}
