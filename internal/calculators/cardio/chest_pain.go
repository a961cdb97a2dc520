package cardio

import "medcalc/internal/calculator"

var (
	historyPoints = map[string]float64{
		"slightly_suspicious":   0,
		"moderately_suspicious": 1,
		"highly_suspicious":     2,
	}
	ecgPoints = map[string]float64{
		"normal":                     0,
		"nonspecific_repolarization": 1,
		"significant_st_deviation":   2,
	}
	troponinPoints = map[string]float64{
		"normal":             0,
		"one_to_three_times": 1,
		"over_three_times":   2,
	}
)

var heartBands = calculator.MustBands(
	calculator.From(7, "high"),
	calculator.From(4, "moderate"),
	calculator.From(0, "low"),
)

// HEARTScore stratifies major adverse cardiac events in chest pain.
func HEARTScore() calculator.Definition {
	return calculator.Definition{
		ID:    "heart_score",
		Label: "HEART Score for Major Cardiac Events",
		Fields: []calculator.Field{
			calculator.Enum("history", "slightly_suspicious", "moderately_suspicious", "highly_suspicious"),
			calculator.Enum("ecg", "normal", "nonspecific_repolarization", "significant_st_deviation"),
			calculator.Number("age").Between(0, 130),
			calculator.Number("risk_factor_count").AtLeast(0).Integer(),
			calculator.Bool("atherosclerotic_disease").Optional(),
			calculator.Enum("troponin", "normal", "one_to_three_times", "over_three_times"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			age := in.Float("age")
			agePts := calculator.Points(age >= 45 && age < 65, 1) + calculator.Points(age >= 65, 2)

			riskPts := 0.0
			switch n := in.Float("risk_factor_count"); {
			case n >= 3 || in.Bool("atherosclerotic_disease"):
				riskPts = 2
			case n >= 1:
				riskPts = 1
			}

			score := historyPoints[in.String("history")] +
				ecgPoints[in.String("ecg")] +
				agePts +
				riskPts +
				troponinPoints[in.String("troponin")]
			return calculator.Result{
				"score": score,
				"band":  heartBands.Classify(score),
			}
		},
	}
}

var timiBands = calculator.MustBands(
	calculator.From(5, "high"),
	calculator.From(3, "intermediate"),
	calculator.From(0, "low"),
)

// timiRiskPct is the 14-day risk of death, MI or urgent revascularization by
// score, with 6 and 7 sharing the top row.
var timiRiskPct = []float64{4.7, 4.7, 8.3, 13.2, 19.9, 26.2, 40.9, 40.9}

// TIMIUnstableAngina scores risk in UA/NSTEMI.
func TIMIUnstableAngina() calculator.Definition {
	return calculator.Definition{
		ID:    "timi_ua",
		Label: "TIMI Risk Score for UA/NSTEMI",
		Fields: []calculator.Field{
			calculator.Number("age").Between(0, 130),
			calculator.Bool("three_or_more_cad_risk_factors"),
			calculator.Bool("known_cad_stenosis_50"),
			calculator.Bool("aspirin_last_7_days"),
			calculator.Bool("severe_angina_recent"),
			calculator.Bool("st_deviation"),
			calculator.Bool("positive_marker"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			score := calculator.Points(in.Float("age") >= 65, 1) +
				calculator.Points(in.Bool("three_or_more_cad_risk_factors"), 1) +
				calculator.Points(in.Bool("known_cad_stenosis_50"), 1) +
				calculator.Points(in.Bool("aspirin_last_7_days"), 1) +
				calculator.Points(in.Bool("severe_angina_recent"), 1) +
				calculator.Points(in.Bool("st_deviation"), 1) +
				calculator.Points(in.Bool("positive_marker"), 1)
			return calculator.Result{
				"score":           score,
				"band":            timiBands.Classify(score),
				"risk_14_day_pct": timiRiskPct[int(score)],
			}
		},
	}
}
