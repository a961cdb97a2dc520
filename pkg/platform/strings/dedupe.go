// Package strings normalises identifier lists read from configuration.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each element and drops blanks and repeats, keeping the
// first occurrence. Comparison is case-sensitive.
//
// Example:
//
//	DedupeAndTrim([]string{" bmi ", "anion_gap", "bmi", "", "  "})
//	// Returns: []string{"bmi", "anion_gap"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// SplitList splits a sep-separated setting such as
// MEDCALC_REQUIRED_CALCULATORS and normalises it with DedupeAndTrim. An empty
// or all-blank input yields nil.
func SplitList(s, sep string) []string {
	out := DedupeAndTrim(strings.Split(s, sep))
	if len(out) == 0 {
		return nil
	}
	return out
}
