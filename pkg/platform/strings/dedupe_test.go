package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "single element",
			input:    []string{"bmi"},
			expected: []string{"bmi"},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  bmi  ", "anion_gap  ", "  qsofa"},
			expected: []string{"bmi", "anion_gap", "qsofa"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"bmi", "anion_gap", "bmi", "qsofa", "anion_gap"},
			expected: []string{"bmi", "anion_gap", "qsofa"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"bmi", "", "  ", "anion_gap"},
			expected: []string{"bmi", "anion_gap"},
		},
		{
			name:     "combined: trim, dedupe, remove empty",
			input:    []string{" bmi ", "anion_gap", "bmi", "", "  ", "anion_gap"},
			expected: []string{"bmi", "anion_gap"},
		},
		{
			name:     "preserves case",
			input:    []string{"BMI", "bmi", "Bmi"},
			expected: []string{"BMI", "bmi", "Bmi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrim(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "only separators and blanks", input: " , ,", expected: nil},
		{name: "single id", input: "qsofa", expected: []string{"qsofa"}},
		{name: "trims and dedupes", input: " bmi,anion_gap,,bmi ", expected: []string{"bmi", "anion_gap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input, ","))
		})
	}
}
