package calculator

import (
	"encoding/json"
	"math"
	"slices"
)

// Verdict is the outcome of validating a raw input bag against a definition.
type Verdict struct {
	OK bool
	// Missing lists every key that was required but absent, or present with
	// the wrong shape, in declaration order.
	Missing []string
}

// Validate checks raw against the declared fields of def. Every offending key
// is reported, not only the first. Undeclared keys are ignored.
//
// A JSON null counts as absent. Optional fields are only checked when present.
func Validate(def Definition, raw map[string]any) Verdict {
	_, verdict := prepare(def, raw)
	return verdict
}

// prepare validates raw and returns the normalised declared inputs.
func prepare(def Definition, raw map[string]any) (Inputs, Verdict) {
	values := make(map[string]any, len(def.Fields))
	var missing []string
	for _, f := range def.Fields {
		v, present := raw[f.Key]
		if present && v == nil {
			present = false
		}
		if !present {
			if f.Required {
				missing = append(missing, f.Key)
			}
			continue
		}
		norm, ok := normalise(f, v)
		if !ok {
			missing = append(missing, f.Key)
			continue
		}
		values[f.Key] = norm
	}
	if len(missing) > 0 {
		return Inputs{}, Verdict{OK: false, Missing: missing}
	}
	return Inputs{values: values}, Verdict{OK: true}
}

// normalise converts v to the canonical Go type for the field kind.
func normalise(f Field, v any) (any, bool) {
	switch f.Kind {
	case KindNumeric:
		n, ok := toFloat(v)
		if !ok || !f.inRange(n) {
			return nil, false
		}
		return n, true
	case KindBool:
		b, ok := v.(bool)
		return b, ok
	case KindEnum:
		s, ok := v.(string)
		if !ok || !slices.Contains(f.Allowed, s) {
			return nil, false
		}
		return s, true
	default:
		return nil, false
	}
}

// toFloat accepts Go numeric types and json.Number. Strings are never numbers.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
