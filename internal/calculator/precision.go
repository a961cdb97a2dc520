package calculator

import (
	"math"
	"strconv"
)

// MaxPrecision is the largest number of decimal digits Round will honour.
// Engine.Run rejects a larger request; Round returns x unchanged.
const MaxPrecision = 15

// Round rounds x to digits decimal places, half away from zero.
//
// The scaled value is first reduced to 15 significant digits so that binary
// representation error (1.005 stored as 1.00499...) does not flip a half-way
// case. Rounding an already rounded value returns it unchanged.
func Round(x float64, digits int) float64 {
	if digits < 0 || digits > MaxPrecision || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	pow := math.Pow10(digits)
	scaled := x * pow
	if math.IsInf(scaled, 0) || math.Abs(scaled) >= 1<<52 {
		return x
	}
	cleaned, err := strconv.ParseFloat(strconv.FormatFloat(scaled, 'g', 15, 64), 64)
	if err != nil {
		cleaned = scaled
	}
	return math.Round(cleaned) / pow
}

// roundResult returns a copy of r with every float rounded to digits places.
// Integers, booleans, strings and nulls pass through unchanged.
func roundResult(r Result, digits int) Result {
	out := make(Result, len(r))
	for k, v := range r {
		switch n := v.(type) {
		case float64:
			out[k] = Round(n, digits)
		case float32:
			out[k] = Round(float64(n), digits)
		default:
			out[k] = v
		}
	}
	return out
}

// nullNonFinite replaces NaN and infinite floats with nil and marks the result
// valid:false. Results without such values are returned as is.
func nullNonFinite(r Result) Result {
	var out Result
	for k, v := range r {
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case float32:
			f = float64(n)
		default:
			continue
		}
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			continue
		}
		if out == nil {
			out = make(Result, len(r)+1)
			for k2, v2 := range r {
				out[k2] = v2
			}
		}
		out[k] = nil
	}
	if out == nil {
		return r
	}
	out["valid"] = false
	return out
}
