// Package hematology holds blood count calculators.
package hematology

import "medcalc/internal/calculator"

const defaultNormalHct = 45.0

// Module registers the hematology calculators.
type Module struct{}

func (Module) Name() string { return "hematology" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(AbsoluteNeutrophilCount(), CorrectedReticulocyteCount())
}

var ancBands = calculator.MustBands(
	calculator.From(1500, "normal"),
	calculator.From(1000, "mild_neutropenia"),
	calculator.From(500, "moderate_neutropenia"),
	calculator.Otherwise("severe_neutropenia"),
)

// AbsoluteNeutrophilCount counts segmented and band neutrophils per µL.
func AbsoluteNeutrophilCount() calculator.Definition {
	return calculator.Definition{
		ID:    "absolute_neutrophil_count",
		Label: "Absolute Neutrophil Count",
		Fields: []calculator.Field{
			calculator.Number("wbc_10e3_ul").AtLeast(0),
			calculator.Number("segs_pct").Between(0, 100),
			calculator.Number("bands_pct").Between(0, 100),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			anc := in.Float("wbc_10e3_ul") * 1000 * (in.Float("segs_pct") + in.Float("bands_pct")) / 100
			return calculator.Result{
				"anc_per_ul": anc,
				"band":       ancBands.Classify(anc),
			}
		},
	}
}

// maturationDays is the reticulocyte maturation correction by hematocrit.
func maturationDays(hct float64) float64 {
	switch {
	case hct >= 35:
		return 1.0
	case hct >= 25:
		return 1.5
	case hct >= 20:
		return 2.0
	default:
		return 2.5
	}
}

// CorrectedReticulocyteCount corrects the reticulocyte percentage for anemia
// and derives the reticulocyte production index.
func CorrectedReticulocyteCount() calculator.Definition {
	return calculator.Definition{
		ID:    "corrected_reticulocyte_count",
		Label: "Corrected Reticulocyte Count / RPI",
		Fields: []calculator.Field{
			calculator.Number("retic_pct").AtLeast(0),
			calculator.Number("hct").Between(0, 100).Positive(),
			calculator.Number("normal_hct").Between(0, 100).Positive().Optional(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			hct := in.Float("hct")
			corrected := in.Float("retic_pct") * hct / in.FloatOr("normal_hct", defaultNormalHct)
			rpi := corrected / maturationDays(hct)
			return calculator.Result{
				"corrected_retic_pct": corrected,
				"rpi":                 rpi,
				"adequate_response":   rpi >= 2,
			}
		},
	}
}
