// Package handler exposes the calculator service over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medcalc/internal/calculator"
	"medcalc/internal/calculator/service"
	"medcalc/pkg/platform/httputil"
	"medcalc/pkg/requestcontext"
)

// Service defines the calculator operations the handler needs.
type Service interface {
	Run(ctx context.Context, req service.RunRequest) calculator.Envelope
	RunBatch(ctx context.Context, reqs []service.RunRequest) ([]calculator.Envelope, error)
	List(ctx context.Context) []calculator.Summary
	Describe(ctx context.Context, id string) (calculator.Descriptor, error)
}

// Handler wires calculator endpoints to the calculator service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a calculator handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the read-only catalog endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/calculators", h.HandleList)
	r.Get("/calculators/{id}", h.HandleDescribe)
}

// RegisterDispatch mounts the dispatch endpoints. They are separate so the
// router can put them behind a stricter rate limit.
func (h *Handler) RegisterDispatch(r chi.Router) {
	r.Post("/calculators/{id}/run", h.HandleRun)
	r.Post("/run", h.HandleRunNamed)
	r.Post("/run/batch", h.HandleRunBatch)
}

// HandleList handles GET /calculators.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list := h.service.List(r.Context())
	httputil.WriteJSON(w, http.StatusOK, &CatalogResponse{Calculators: list, Count: len(list)})
}

// HandleDescribe handles GET /calculators/{id}.
func (h *Handler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	desc, err := h.service.Describe(ctx, id)
	if err != nil {
		h.logger.InfoContext(ctx, "describe failed",
			"request_id", requestcontext.RequestID(ctx),
			"calculator_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, desc)
}

// HandleRun handles POST /calculators/{id}/run.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RunRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.dispatch(ctx, w, service.RunRequest{
		Name:      chi.URLParam(r, "id"),
		Inputs:    req.Inputs,
		Precision: req.Precision,
	})
}

// HandleRunNamed handles POST /run.
func (h *Handler) HandleRunNamed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[NamedRunRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.dispatch(ctx, w, req.toService())
}

func (h *Handler) dispatch(ctx context.Context, w http.ResponseWriter, req service.RunRequest) {
	start := time.Now()
	env := h.service.Run(ctx, req)
	status := envelopeStatus(env)

	h.logger.InfoContext(ctx, "calculator dispatched",
		"request_id", requestcontext.RequestID(ctx),
		"calculator_id", req.Name,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, status, env)
}

// HandleRunBatch handles POST /run/batch. Each call succeeds or fails on its
// own inside a 200 response.
func (h *Handler) HandleRunBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.RunBatch(ctx, req.toService())
	if err != nil {
		h.logger.ErrorContext(ctx, "batch dispatch failed",
			"request_id", requestID,
			"calls", len(req.Calls),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "calculator batch dispatched",
		"request_id", requestID,
		"calls", len(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, &BatchResponse{Results: results})
}
