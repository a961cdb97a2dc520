package calculator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	dErrors "medcalc/pkg/domain-errors"
	"medcalc/pkg/platform/sentinel"
)

// Module groups related calculators that register together at startup.
type Module interface {
	Name() string
	Register(r *Registry) error
}

// Registry maps calculator identifiers to definitions.
//
// It is filled during startup and then frozen. After Freeze it is read-only,
// so concurrent lookups need no locking.
type Registry struct {
	defs   map[string]Definition
	frozen bool
}

// NewRegistry returns an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds def under its identifier. Duplicate identifiers and malformed
// definitions are programming errors and are reported as such.
func (r *Registry) Register(def Definition) error {
	if r.frozen {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("registry is frozen: cannot register %q", def.ID))
	}
	if err := def.check(); err != nil {
		return err
	}
	if _, exists := r.defs[def.ID]; exists {
		return dErrors.Wrap(sentinel.ErrConflict, dErrors.CodeConflict,
			fmt.Sprintf("calculator %q is already registered", def.ID))
	}
	r.defs[def.ID] = def.clone()
	return nil
}

// RegisterAll registers every definition and returns all failures joined.
func (r *Registry) RegisterAll(defs ...Definition) error {
	var errs []error
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the definition registered under id.
func (r *Registry) Lookup(id string) (Definition, bool) {
	def, ok := r.defs[id]
	if !ok {
		return Definition{}, false
	}
	return def.clone(), true
}

// lookup is the allocation-free variant used by the engine.
func (r *Registry) lookup(id string) (Definition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// List returns every definition ordered by identifier.
func (r *Registry) List() []Definition {
	out := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def.clone())
	}
	slices.SortFunc(out, func(a, b Definition) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Len returns the number of registered calculators.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Require verifies that every referenced identifier is registered. All unknown
// identifiers are reported together.
func (r *Registry) Require(ids ...string) error {
	var unknown []string
	for _, id := range ids {
		if _, ok := r.defs[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound,
			"unknown calculators referenced: "+strings.Join(unknown, ", "))
	}
	return nil
}

// Install registers each module in order and freezes the registry.
// Any failure aborts startup; the returned error names the offending module.
func Install(r *Registry, modules ...Module) error {
	var errs []error
	for _, m := range modules {
		if err := m.Register(r); err != nil {
			errs = append(errs, fmt.Errorf("module %s: %w", m.Name(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	r.Freeze()
	return nil
}
