package critical

import (
	"math"

	"medcalc/internal/calculator"
)

const (
	defaultAtmosphericMmHg = 760.0
	waterVaporMmHg         = 47.0
	defaultRespQuotient    = 0.8
)

// Berlin definition severity; the bounds are strict.
var berlinBands = calculator.MustBands(
	calculator.Above(300, "normal"),
	calculator.Above(200, "mild"),
	calculator.Above(100, "moderate"),
	calculator.Otherwise("severe"),
)

func fio2Field() calculator.Field {
	return calculator.Number("fio2").Between(0.21, 1)
}

// PFRatio is the PaO2/FiO2 ratio.
func PFRatio() calculator.Definition {
	return calculator.Definition{
		ID:    "pf_ratio",
		Label: "PaO2/FiO2 Ratio",
		Fields: []calculator.Field{
			calculator.Number("pao2_mmhg").Positive(),
			fio2Field(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			ratio := in.Float("pao2_mmhg") / in.Float("fio2")
			return calculator.Result{
				"pf_ratio": ratio,
				"band":     berlinBands.Classify(ratio),
			}
		},
	}
}

// AAGradient is the alveolar-arterial oxygen gradient.
func AAGradient() calculator.Definition {
	return calculator.Definition{
		ID:    "aa_gradient",
		Label: "A-a O2 Gradient",
		Fields: []calculator.Field{
			fio2Field(),
			calculator.Number("paco2_mmhg").Positive(),
			calculator.Number("pao2_mmhg").Positive(),
			calculator.Number("patm_mmhg").Positive().Optional(),
			calculator.Number("rq").Positive().Optional(),
			calculator.Number("age").Between(0, 130).Optional(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			patm := in.FloatOr("patm_mmhg", defaultAtmosphericMmHg)
			rq := in.FloatOr("rq", defaultRespQuotient)
			pao2Alv := in.Float("fio2")*(patm-waterVaporMmHg) - in.Float("paco2_mmhg")/rq
			gradient := pao2Alv - in.Float("pao2_mmhg")

			var expected, elevated any
			if in.Has("age") {
				e := in.Float("age")/4 + 4
				expected, elevated = e, gradient > e
			}
			return calculator.Result{
				"pao2_alveolar":     pao2Alv,
				"aa_gradient":       gradient,
				"expected_gradient": expected,
				"elevated":          elevated,
			}
		},
	}
}

// ParklandFormula gives the first 24 hour crystalloid volume for burns.
func ParklandFormula() calculator.Definition {
	return calculator.Definition{
		ID:    "parkland_formula",
		Label: "Parkland Formula for Burns",
		Fields: []calculator.Field{
			calculator.Number("weight_kg").Positive(),
			calculator.Number("tbsa_pct").Between(0, 100),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			total := 4 * in.Float("weight_kg") * in.Float("tbsa_pct")
			half := total / 2
			return calculator.Result{
				"total_ml_24h":       total,
				"first_8h_ml":        half,
				"next_16h_ml":        half,
				"first_8h_rate_ml_h": half / 8,
				"next_16h_rate_ml_h": half / 16,
			}
		},
	}
}

// MaintenanceFluids applies the 4-2-1 rule.
func MaintenanceFluids() calculator.Definition {
	return calculator.Definition{
		ID:    "maintenance_fluids",
		Label: "Maintenance Fluids (4-2-1 Rule)",
		Fields: []calculator.Field{
			calculator.Number("weight_kg").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			w := in.Float("weight_kg")
			rate := 4*math.Min(w, 10) +
				2*math.Min(math.Max(w-10, 0), 10) +
				math.Max(w-20, 0)
			return calculator.Result{
				"rate_ml_h": rate,
				"daily_ml":  rate * 24,
			}
		},
	}
}
