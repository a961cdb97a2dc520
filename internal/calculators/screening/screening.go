// Package screening holds triage scores for pharyngitis and TIA.
package screening

import "medcalc/internal/calculator"

// Module registers the screening calculators.
type Module struct{}

func (Module) Name() string { return "screening" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(CentorMcIsaac(), ABCD2())
}

var centorBands = calculator.MustBands(
	calculator.From(4, "high"),
	calculator.From(2, "moderate"),
	calculator.From(1, "low"),
	calculator.From(-1, "very_low"),
)

// centorStrepPct is the probability of streptococcal pharyngitis by score,
// indexed from -1.
var centorStrepPct = []float64{1, 1, 10, 17, 35, 51, 51}

// CentorMcIsaac scores the likelihood of strep pharyngitis with the McIsaac
// age adjustment.
func CentorMcIsaac() calculator.Definition {
	return calculator.Definition{
		ID:    "centor_mcisaac",
		Label: "Centor Score (Modified/McIsaac) for Strep Pharyngitis",
		Fields: []calculator.Field{
			calculator.Number("age").Between(0, 130),
			calculator.Bool("tonsillar_exudate"),
			calculator.Bool("tender_anterior_nodes"),
			calculator.Bool("fever_history"),
			calculator.Bool("cough_absent"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			age := in.Float("age")
			score := calculator.Points(age >= 3 && age <= 14, 1) -
				calculator.Points(age >= 45, 1) +
				calculator.Points(in.Bool("tonsillar_exudate"), 1) +
				calculator.Points(in.Bool("tender_anterior_nodes"), 1) +
				calculator.Points(in.Bool("fever_history"), 1) +
				calculator.Points(in.Bool("cough_absent"), 1)
			return calculator.Result{
				"score":                 score,
				"band":                  centorBands.Classify(score),
				"strep_probability_pct": centorStrepPct[int(score)+1],
			}
		},
	}
}

var abcd2Bands = calculator.MustBands(
	calculator.From(6, "high"),
	calculator.From(4, "moderate"),
	calculator.From(0, "low"),
)

// abcd2StrokeRisk2DayPct is the two-day stroke risk for each band.
var abcd2StrokeRisk2DayPct = map[string]float64{
	"high":     8.1,
	"moderate": 4.1,
	"low":      1.0,
}

// ABCD2 estimates early stroke risk after a transient ischemic attack.
func ABCD2() calculator.Definition {
	return calculator.Definition{
		ID:    "abcd2",
		Label: "ABCD2 Score for TIA",
		Fields: []calculator.Field{
			calculator.Number("age").Between(0, 130),
			calculator.Number("sbp").AtLeast(0),
			calculator.Number("dbp").AtLeast(0),
			calculator.Enum("clinical_features", "unilateral_weakness", "speech_disturbance", "other"),
			calculator.Number("duration_min").AtLeast(0),
			calculator.Bool("diabetes"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			features := 0.0
			switch in.String("clinical_features") {
			case "unilateral_weakness":
				features = 2
			case "speech_disturbance":
				features = 1
			}
			duration := in.Float("duration_min")
			score := calculator.Points(in.Float("age") >= 60, 1) +
				calculator.Points(in.Float("sbp") >= 140 || in.Float("dbp") >= 90, 1) +
				features +
				calculator.Points(duration >= 60, 2) +
				calculator.Points(duration >= 10 && duration < 60, 1) +
				calculator.Points(in.Bool("diabetes"), 1)
			band := abcd2Bands.Classify(score)
			return calculator.Result{
				"score":                 score,
				"band":                  band,
				"stroke_risk_2_day_pct": abcd2StrokeRisk2DayPct[band],
			}
		},
	}
}
