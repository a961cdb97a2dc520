package cardio

import "medcalc/internal/calculator"

// A score of exactly 6 is moderate; high starts above 6.
var wellsBands = calculator.MustBands(
	calculator.Above(6, "high"),
	calculator.From(2, "moderate"),
	calculator.From(0, "low"),
)

// wellsLikelyCutoff splits the two-tier model: PE likely above 4.
const wellsLikelyCutoff = 4.0

// WellsPE estimates the pretest probability of pulmonary embolism.
func WellsPE() calculator.Definition {
	return calculator.Definition{
		ID:    "wells_pe",
		Label: "Wells' Criteria for Pulmonary Embolism",
		Fields: []calculator.Field{
			calculator.Bool("clinical_signs_dvt"),
			calculator.Bool("pe_most_likely"),
			calculator.Bool("heart_rate_over_100"),
			calculator.Bool("immobilization_or_surgery"),
			calculator.Bool("previous_pe_dvt"),
			calculator.Bool("hemoptysis"),
			calculator.Bool("malignancy"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			score := calculator.Points(in.Bool("clinical_signs_dvt"), 3) +
				calculator.Points(in.Bool("pe_most_likely"), 3) +
				calculator.Points(in.Bool("heart_rate_over_100"), 1.5) +
				calculator.Points(in.Bool("immobilization_or_surgery"), 1.5) +
				calculator.Points(in.Bool("previous_pe_dvt"), 1.5) +
				calculator.Points(in.Bool("hemoptysis"), 1) +
				calculator.Points(in.Bool("malignancy"), 1)
			return calculator.Result{
				"score":     score,
				"band":      wellsBands.Classify(score),
				"pe_likely": score > wellsLikelyCutoff,
			}
		},
	}
}

// PERC applies the pulmonary embolism rule-out criteria. PE can be ruled out
// only when no criterion is met.
func PERC() calculator.Definition {
	return calculator.Definition{
		ID:    "perc",
		Label: "PERC Rule for Pulmonary Embolism",
		Fields: []calculator.Field{
			calculator.Number("age").Between(0, 130),
			calculator.Number("heart_rate").AtLeast(0),
			calculator.Number("spo2_pct").Between(0, 100),
			calculator.Bool("unilateral_leg_swelling"),
			calculator.Bool("hemoptysis"),
			calculator.Bool("recent_surgery_or_trauma"),
			calculator.Bool("prior_pe_dvt"),
			calculator.Bool("hormone_use"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			met := calculator.Points(in.Float("age") >= 50, 1) +
				calculator.Points(in.Float("heart_rate") >= 100, 1) +
				calculator.Points(in.Float("spo2_pct") < 95, 1) +
				calculator.Points(in.Bool("unilateral_leg_swelling"), 1) +
				calculator.Points(in.Bool("hemoptysis"), 1) +
				calculator.Points(in.Bool("recent_surgery_or_trauma"), 1) +
				calculator.Points(in.Bool("prior_pe_dvt"), 1) +
				calculator.Points(in.Bool("hormone_use"), 1)
			return calculator.Result{
				"criteria_met":  met,
				"perc_negative": met == 0,
			}
		},
	}
}
