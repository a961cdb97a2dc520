package calculator

import (
	"encoding/json"
	"fmt"
)

// ErrorKind names why the engine could not evaluate a call.
type ErrorKind string

const (
	ErrUnknownCalculator ErrorKind = "UnknownCalculator"
	ErrInvalidInput      ErrorKind = "InvalidInput"
)

// PrecisionKey is reported in Envelope.Missing when the requested precision is
// not a usable number of digits (negative or above MaxPrecision).
const PrecisionKey = "precision"

// Envelope is the uniform result of Engine.Run.
//
// A successful envelope carries the calculator label and its result fields.
// A failed envelope carries the error kind and, for InvalidInput, every
// offending input key. A formula that declares itself not applicable still
// produces a successful envelope; its result says so through valid:false.
// Result values are always JSON encodable: non-finite floats never survive Run.
type Envelope struct {
	ID      string
	Label   string
	Error   ErrorKind
	Missing []string
	Result  Result
}

// OK reports whether the call was evaluated.
func (e Envelope) OK() bool {
	return e.Error == ""
}

// MarshalJSON flattens the envelope: {id, label, ...result} on success and
// {id, error, missing?} on failure.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if !e.OK() {
		out := struct {
			ID      string    `json:"id"`
			Error   ErrorKind `json:"error"`
			Missing []string  `json:"missing,omitempty"`
		}{ID: e.ID, Error: e.Error, Missing: e.Missing}
		return json.Marshal(out)
	}
	out := make(map[string]any, len(e.Result)+2)
	for k, v := range e.Result {
		out[k] = v
	}
	out["id"] = e.ID
	out["label"] = e.Label
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Envelope{}
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &e.ID); err != nil {
			return fmt.Errorf("envelope id: %w", err)
		}
	}
	if v, ok := raw["error"]; ok {
		if err := json.Unmarshal(v, &e.Error); err != nil {
			return fmt.Errorf("envelope error: %w", err)
		}
		if v, ok := raw["missing"]; ok {
			if err := json.Unmarshal(v, &e.Missing); err != nil {
				return fmt.Errorf("envelope missing: %w", err)
			}
		}
		return nil
	}
	if v, ok := raw["label"]; ok {
		if err := json.Unmarshal(v, &e.Label); err != nil {
			return fmt.Errorf("envelope label: %w", err)
		}
	}
	e.Result = make(Result, len(raw))
	for k, v := range raw {
		if k == "id" || k == "label" {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("envelope field %s: %w", k, err)
		}
		e.Result[k] = val
	}
	return nil
}

// RunOption tunes a single Engine.Run call.
type RunOption func(*runConfig)

type runConfig struct {
	precision    int
	hasPrecision bool
}

// WithPrecision rounds every numeric result field to digits decimal places.
func WithPrecision(digits int) RunOption {
	return func(c *runConfig) {
		c.precision = digits
		c.hasPrecision = true
	}
}

// WithOptionalPrecision applies WithPrecision when digits is non-nil.
func WithOptionalPrecision(digits *int) RunOption {
	return func(c *runConfig) {
		if digits != nil {
			c.precision = *digits
			c.hasPrecision = true
		}
	}
}

// Engine dispatches calls by identifier. It holds no mutable state of its own.
type Engine struct {
	registry *Registry
}

// NewEngine returns an engine over registry. The registry should be frozen
// before the engine serves concurrent calls.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Registry exposes the engine's registry for catalog queries.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Run evaluates calculator id against inputs.
//
// Pipeline: lookup, validate, strip undeclared keys, compute, round. The
// compute function is never called when validation fails. A precision outside
// [0, MaxPrecision] is reported as InvalidInput under PrecisionKey.
//
// A formula that overflows or divides into NaN for extreme but valid inputs
// yields null for that field and valid:false, like any other undefined result.
func (e *Engine) Run(id string, inputs map[string]any, opts ...RunOption) Envelope {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	def, ok := e.registry.lookup(id)
	if !ok {
		return Envelope{ID: id, Error: ErrUnknownCalculator}
	}

	in, verdict := prepare(def, inputs)
	if cfg.hasPrecision && (cfg.precision < 0 || cfg.precision > MaxPrecision) {
		verdict.OK = false
		verdict.Missing = append(verdict.Missing, PrecisionKey)
	}
	if !verdict.OK {
		return Envelope{ID: id, Error: ErrInvalidInput, Missing: verdict.Missing}
	}

	result := def.Compute(in)
	if result == nil {
		result = Result{}
	}
	if cfg.hasPrecision {
		result = roundResult(result, cfg.precision)
	}
	result = nullNonFinite(result)
	return Envelope{ID: def.ID, Label: def.Label, Result: result}
}
