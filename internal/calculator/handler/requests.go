package handler

import (
	"fmt"
	"strings"

	"medcalc/internal/calculator"
	"medcalc/internal/calculator/service"
	dErrors "medcalc/pkg/domain-errors"
)

// RunRequest is the body of POST /calculators/{id}/run.
type RunRequest struct {
	Inputs    map[string]any `json:"inputs"`
	Precision *int           `json:"precision,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *RunRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return validatePrecision(r.Precision)
}

// NamedRunRequest is the body of POST /run and one entry of a batch.
type NamedRunRequest struct {
	Name      string         `json:"name"`
	Inputs    map[string]any `json:"inputs"`
	Precision *int           `json:"precision,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *NamedRunRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return validatePrecision(r.Precision)
}

func (r *NamedRunRequest) toService() service.RunRequest {
	return service.RunRequest{Name: r.Name, Inputs: r.Inputs, Precision: r.Precision}
}

// BatchRequest is the body of POST /run/batch.
type BatchRequest struct {
	Calls []NamedRunRequest `json:"calls"`
}

// Validate implements httputil.Validatable. Every call is validated so a bad
// batch is rejected before any calculator runs.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Calls) == 0 {
		return dErrors.New(dErrors.CodeValidation, "calls is required")
	}
	if len(r.Calls) > service.MaxBatchSize {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("calls must contain at most %d entries", service.MaxBatchSize))
	}
	for i := range r.Calls {
		if err := r.Calls[i].Validate(); err != nil {
			return dErrors.New(dErrors.CodeOf(err), fmt.Sprintf("calls[%d]: %s", i, dErrors.MessageOf(err)))
		}
	}
	return nil
}

func (r *BatchRequest) toService() []service.RunRequest {
	out := make([]service.RunRequest, len(r.Calls))
	for i := range r.Calls {
		out[i] = r.Calls[i].toService()
	}
	return out
}

func validatePrecision(p *int) error {
	if p != nil && (*p < 0 || *p > calculator.MaxPrecision) {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("precision must be an integer between 0 and %d", calculator.MaxPrecision))
	}
	return nil
}
