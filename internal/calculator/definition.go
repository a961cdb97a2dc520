// Package calculator is the registry and execution engine behind every clinical
// formula the service exposes.
//
// A calculator is described once by a Definition: an identifier, a display label,
// the declared input fields and a pure compute function. Definitions are collected
// into a Registry during startup and executed through Engine.Run, which validates
// inputs, strips undeclared keys, invokes the computation and applies the
// requested precision. Nothing in this package performs I/O.
package calculator

import (
	"fmt"
	"slices"
	"strings"

	dErrors "medcalc/pkg/domain-errors"
)

// ComputeFunc maps validated inputs to named outputs. Implementations must be
// deterministic and must not retain state between calls.
type ComputeFunc func(in Inputs) Result

// Result holds the named outputs of a computation. A nil value means the
// output could not be computed for the given inputs.
type Result map[string]any

// Definition describes a single calculator.
type Definition struct {
	ID      string
	Label   string
	Fields  []Field
	Compute ComputeFunc
}

// Descriptor is the wire-friendly view of a Definition.
type Descriptor struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Inputs []FieldDescriptor `json:"inputs"`
}

// Summary is the catalog entry for a calculator.
type Summary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Describe returns the public description of the definition.
func (d Definition) Describe() Descriptor {
	inputs := make([]FieldDescriptor, 0, len(d.Fields))
	for _, f := range d.Fields {
		inputs = append(inputs, f.describe())
	}
	return Descriptor{ID: d.ID, Label: d.Label, Inputs: inputs}
}

// Summary returns the catalog entry for the definition.
func (d Definition) Summary() Summary {
	return Summary{ID: d.ID, Label: d.Label}
}

// check enforces the structural invariants of a definition.
func (d Definition) check() error {
	if strings.TrimSpace(d.ID) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "calculator id is required")
	}
	if strings.TrimSpace(d.Label) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("calculator %q: label is required", d.ID))
	}
	if d.Compute == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("calculator %q: compute function is required", d.ID))
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if err := f.check(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvariantViolation, fmt.Sprintf("calculator %q", d.ID))
		}
		if _, dup := seen[f.Key]; dup {
			return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("calculator %q: duplicate input key %q", d.ID, f.Key))
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

// clone returns a copy that shares no mutable state with d.
func (d Definition) clone() Definition {
	fields := make([]Field, len(d.Fields))
	for i, f := range d.Fields {
		f.Allowed = slices.Clone(f.Allowed)
		if f.Min != nil {
			lo := *f.Min
			f.Min = &lo
		}
		if f.Max != nil {
			hi := *f.Max
			f.Max = &hi
		}
		fields[i] = f
	}
	d.Fields = fields
	return d
}
