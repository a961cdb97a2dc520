package calculator

// Inputs is the validated, normalised input bag handed to a ComputeFunc.
// Numeric values are float64, booleans are bool and enumerated values are
// string. Only declared keys are present.
type Inputs struct {
	values map[string]any
}

// Has reports whether key was supplied.
func (in Inputs) Has(key string) bool {
	_, ok := in.values[key]
	return ok
}

// Float returns a numeric input, or 0 when absent.
func (in Inputs) Float(key string) float64 {
	v, _ := in.values[key].(float64)
	return v
}

// FloatOr returns a numeric input, or def when absent.
func (in Inputs) FloatOr(key string, def float64) float64 {
	if v, ok := in.values[key].(float64); ok {
		return v
	}
	return def
}

// Bool returns a boolean input, or false when absent.
func (in Inputs) Bool(key string) bool {
	v, _ := in.values[key].(bool)
	return v
}

// String returns an enumerated input, or "" when absent.
func (in Inputs) String(key string) string {
	v, _ := in.values[key].(string)
	return v
}

// Len returns the number of supplied inputs.
func (in Inputs) Len() int {
	return len(in.values)
}
