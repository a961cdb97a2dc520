// Package calctest provides helpers for exercising single calculator
// definitions through the engine in tests.
package calctest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"medcalc/internal/calculator"
)

// Run registers def in a fresh registry and dispatches it once.
func Run(t testing.TB, def calculator.Definition, inputs map[string]any, opts ...calculator.RunOption) calculator.Envelope {
	t.Helper()
	reg := calculator.NewRegistry()
	require.NoError(t, reg.Register(def))
	reg.Freeze()
	return calculator.NewEngine(reg).Run(def.ID, inputs, opts...)
}

// Result runs def and fails the test unless the envelope is a success.
func Result(t testing.TB, def calculator.Definition, inputs map[string]any) calculator.Result {
	t.Helper()
	env := Run(t, def, inputs)
	require.True(t, env.OK(), "expected success, got error=%s missing=%v", env.Error, env.Missing)
	return env.Result
}

// Float fetches a numeric output, failing when it is absent or null.
func Float(t testing.TB, res calculator.Result, key string) float64 {
	t.Helper()
	v, ok := res[key]
	require.True(t, ok, "output %q absent", key)
	f, ok := v.(float64)
	require.True(t, ok, "output %q is %T, want float64", key, v)
	return f
}
