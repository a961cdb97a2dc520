package calculator

import (
	"fmt"
	"math"
	"strings"
)

// Threshold is one row of a band table.
type Threshold struct {
	Min   float64
	Label string
	// Exclusive makes Min a strict lower bound (score > Min).
	Exclusive bool
}

// From is a threshold matched by scores >= min.
func From(min float64, label string) Threshold {
	return Threshold{Min: min, Label: label}
}

// Above is a threshold matched by scores > min.
//
// Band tables are otherwise rows of inclusive lower bounds. Above extends that
// model for published cutoffs stated as a strict inequality, such as Wells
// PE > 6 for high probability, so a score exactly on the bound falls into the
// band below it.
func Above(min float64, label string) Threshold {
	return Threshold{Min: min, Label: label, Exclusive: true}
}

// Otherwise is the catch-all lowest band.
func Otherwise(label string) Threshold {
	return Threshold{Min: math.Inf(-1), Label: label}
}

// Bands maps a score to a named band. Thresholds are ordered from highest to
// lowest and the first one the score satisfies wins, which fixes the tie-break
// at exact boundary values.
type Bands struct {
	rows []Threshold
}

// NewBands builds a band table. Rows must be listed highest first with strictly
// decreasing lower bounds; an inclusive and an exclusive row may share a bound
// only when the exclusive row comes first.
func NewBands(rows ...Threshold) (Bands, error) {
	if len(rows) == 0 {
		return Bands{}, fmt.Errorf("band table needs at least one threshold")
	}
	for i, row := range rows {
		if strings.TrimSpace(row.Label) == "" {
			return Bands{}, fmt.Errorf("band %d: label is required", i)
		}
		if math.IsNaN(row.Min) {
			return Bands{}, fmt.Errorf("band %q: lower bound is NaN", row.Label)
		}
		if i == 0 {
			continue
		}
		prev := rows[i-1]
		switch {
		case row.Min < prev.Min:
		case row.Min == prev.Min && prev.Exclusive && !row.Exclusive:
		default:
			return Bands{}, fmt.Errorf("band %q: thresholds must be listed highest first without overlap", row.Label)
		}
	}
	return Bands{rows: append([]Threshold(nil), rows...)}, nil
}

// MustBands is NewBands for package-level tables; a malformed table aborts
// startup.
func MustBands(rows ...Threshold) Bands {
	b, err := NewBands(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// Classify returns the label of the first threshold the score satisfies, or ""
// when the score lies below the lowest bound.
func (b Bands) Classify(score float64) string {
	if math.IsNaN(score) {
		return ""
	}
	for _, row := range b.rows {
		if row.Exclusive && score > row.Min {
			return row.Label
		}
		if !row.Exclusive && score >= row.Min {
			return row.Label
		}
	}
	return ""
}

// Floor returns the lowest lower bound of the table.
func (b Bands) Floor() float64 {
	if len(b.rows) == 0 {
		return math.NaN()
	}
	return b.rows[len(b.rows)-1].Min
}

// Labels returns the band labels from highest to lowest.
func (b Bands) Labels() []string {
	out := make([]string, len(b.rows))
	for i, row := range b.rows {
		out[i] = row.Label
	}
	return out
}

// Covers checks that every score from lo to hi in the given step maps to a
// band. Together with the ordering enforced by NewBands this shows the table
// partitions the domain.
func (b Bands) Covers(lo, hi, step float64) error {
	if step <= 0 {
		return fmt.Errorf("step must be positive")
	}
	n := int(math.Round((hi - lo) / step))
	for i := 0; i <= n; i++ {
		score := lo + float64(i)*step
		if b.Classify(score) == "" {
			return fmt.Errorf("score %v maps to no band", score)
		}
	}
	return nil
}

// Points returns pts when cond holds and zero otherwise. It is the building
// block of scored aggregations.
func Points(cond bool, pts float64) float64 {
	if cond {
		return pts
	}
	return 0
}
