package critical

import "medcalc/internal/calculator"

var qsofaBands = calculator.MustBands(
	calculator.From(2, "high_risk"),
	calculator.From(0, "low_risk"),
)

// QSOFA is the bedside quick SOFA screen.
func QSOFA() calculator.Definition {
	return calculator.Definition{
		ID:    "qsofa",
		Label: "qSOFA (Quick SOFA) Score",
		Fields: []calculator.Field{
			calculator.Number("respiratory_rate").AtLeast(0),
			calculator.Number("sbp").AtLeast(0),
			calculator.Bool("altered_mentation"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			score := calculator.Points(in.Float("respiratory_rate") >= 22, 1) +
				calculator.Points(in.Float("sbp") <= 100, 1) +
				calculator.Points(in.Bool("altered_mentation"), 1)
			return calculator.Result{
				"score": score,
				"band":  qsofaBands.Classify(score),
			}
		},
	}
}

// SIRS counts the systemic inflammatory response criteria.
func SIRS() calculator.Definition {
	return calculator.Definition{
		ID:    "sirs",
		Label: "SIRS Criteria",
		Fields: []calculator.Field{
			calculator.Number("temp_c").Positive(),
			calculator.Number("heart_rate").AtLeast(0),
			calculator.Number("respiratory_rate").AtLeast(0),
			calculator.Number("paco2_mmhg").Positive().Optional(),
			calculator.Number("wbc_10e9_l").AtLeast(0),
			calculator.Number("bands_pct").Between(0, 100).Optional(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			temp := in.Float("temp_c")
			wbc := in.Float("wbc_10e9_l")
			tachypnea := in.Float("respiratory_rate") > 20 ||
				(in.Has("paco2_mmhg") && in.Float("paco2_mmhg") < 32)
			leukocytes := wbc > 12 || wbc < 4 || in.FloatOr("bands_pct", 0) > 10
			met := calculator.Points(temp > 38 || temp < 36, 1) +
				calculator.Points(in.Float("heart_rate") > 90, 1) +
				calculator.Points(tachypnea, 1) +
				calculator.Points(leukocytes, 1)
			return calculator.Result{
				"criteria_met":  met,
				"sirs_positive": met >= 2,
			}
		},
	}
}

var curb65Bands = calculator.MustBands(
	calculator.From(3, "high"),
	calculator.From(2, "moderate"),
	calculator.From(0, "low"),
)

// curb65MortalityPct is 30-day mortality by score.
var curb65MortalityPct = []float64{0.6, 2.7, 6.8, 14.0, 27.8, 27.8}

// CURB65 grades community-acquired pneumonia severity.
func CURB65() calculator.Definition {
	return calculator.Definition{
		ID:    "curb65",
		Label: "CURB-65 Score for Pneumonia Severity",
		Fields: []calculator.Field{
			calculator.Bool("confusion"),
			calculator.Number("bun_mg_dl").AtLeast(0),
			calculator.Number("respiratory_rate").AtLeast(0),
			calculator.Number("sbp").AtLeast(0),
			calculator.Number("dbp").AtLeast(0),
			calculator.Number("age").Between(0, 130),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			score := calculator.Points(in.Bool("confusion"), 1) +
				calculator.Points(in.Float("bun_mg_dl") > 19, 1) +
				calculator.Points(in.Float("respiratory_rate") >= 30, 1) +
				calculator.Points(in.Float("sbp") < 90 || in.Float("dbp") <= 60, 1) +
				calculator.Points(in.Float("age") >= 65, 1)
			return calculator.Result{
				"score":             score,
				"band":              curb65Bands.Classify(score),
				"mortality_30d_pct": curb65MortalityPct[int(score)],
			}
		},
	}
}

var gcsBands = calculator.MustBands(
	calculator.From(13, "mild"),
	calculator.From(9, "moderate"),
	calculator.From(3, "severe"),
)

// GlasgowComaScale sums the eye, verbal and motor components.
func GlasgowComaScale() calculator.Definition {
	return calculator.Definition{
		ID:    "glasgow_coma_scale",
		Label: "Glasgow Coma Scale",
		Fields: []calculator.Field{
			calculator.Number("eye").Between(1, 4).Integer(),
			calculator.Number("verbal").Between(1, 5).Integer(),
			calculator.Number("motor").Between(1, 6).Integer(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			score := in.Float("eye") + in.Float("verbal") + in.Float("motor")
			return calculator.Result{
				"score": score,
				"band":  gcsBands.Classify(score),
			}
		},
	}
}
