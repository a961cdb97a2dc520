package acidbase

import "medcalc/internal/calculator"

const (
	// normalAlbuminGdL is the reference albumin for gap and calcium corrections.
	normalAlbuminGdL = 4.0
	// albuminGapFactor is the anion gap shift per g/dL of albumin.
	albuminGapFactor = 2.5
	// normalAnionGap is the midpoint of the reference range without potassium.
	normalAnionGap    = 12.0
	normalBicarbonate = 24.0
)

var anionGapBands = calculator.MustBands(
	calculator.Above(12, "elevated"),
	calculator.From(8, "normal"),
	calculator.Otherwise("low"),
)

func electrolyteFields() []calculator.Field {
	return []calculator.Field{
		calculator.Number("na").Positive(),
		calculator.Number("cl").Positive(),
		calculator.Number("hco3").Positive(),
	}
}

func gap(in calculator.Inputs) float64 {
	return in.Float("na") - in.Float("cl") - in.Float("hco3")
}

// AnionGap is Na - (Cl + HCO3), with an optional potassium-inclusive variant.
func AnionGap() calculator.Definition {
	fields := append(electrolyteFields(), calculator.Number("k").Positive().Optional())
	return calculator.Definition{
		ID:     "anion_gap",
		Label:  "Anion Gap",
		Fields: fields,
		Compute: func(in calculator.Inputs) calculator.Result {
			ag := gap(in)
			var agK any
			if in.Has("k") {
				agK = ag + in.Float("k")
			}
			return calculator.Result{
				"ag":   ag,
				"ag_k": agK,
				"band": anionGapBands.Classify(ag),
			}
		},
	}
}

// AnionGapCorrected adjusts the anion gap for hypoalbuminemia.
func AnionGapCorrected() calculator.Definition {
	fields := append([]calculator.Field{calculator.Number("albumin_g_dl").Positive()}, electrolyteFields()...)
	return calculator.Definition{
		ID:     "anion_gap_corrected",
		Label:  "Albumin-Corrected Anion Gap",
		Fields: fields,
		Compute: func(in calculator.Inputs) calculator.Result {
			ag := gap(in)
			corrected := ag + albuminGapFactor*(normalAlbuminGdL-in.Float("albumin_g_dl"))
			return calculator.Result{
				"ag":           ag,
				"ag_corrected": corrected,
				"band":         anionGapBands.Classify(corrected),
			}
		},
	}
}

var deltaRatioBands = calculator.MustBands(
	calculator.Above(2, "hagma_with_metabolic_alkalosis"),
	calculator.From(0.8, "pure_hagma"),
	calculator.From(0.4, "mixed_hagma_nagma"),
	calculator.Otherwise("nagma"),
)

// DeltaRatio compares the rise in anion gap with the fall in bicarbonate.
// It is undefined unless bicarbonate is below normal.
func DeltaRatio() calculator.Definition {
	return calculator.Definition{
		ID:     "delta_ratio",
		Label:  "Delta Ratio (Delta Gap)",
		Fields: electrolyteFields(),
		Compute: func(in calculator.Inputs) calculator.Result {
			ag := gap(in)
			deltaAG := ag - normalAnionGap
			deltaHCO3 := normalBicarbonate - in.Float("hco3")
			if deltaHCO3 <= 0 {
				return calculator.Result{
					"valid":       false,
					"ag":          ag,
					"delta_ag":    deltaAG,
					"delta_hco3":  deltaHCO3,
					"delta_ratio": nil,
					"band":        nil,
				}
			}
			ratio := deltaAG / deltaHCO3
			return calculator.Result{
				"valid":       true,
				"ag":          ag,
				"delta_ag":    deltaAG,
				"delta_hco3":  deltaHCO3,
				"delta_ratio": ratio,
				"band":        deltaRatioBands.Classify(ratio),
			}
		},
	}
}

// WintersFormula predicts the respiratory compensation for metabolic acidosis.
func WintersFormula() calculator.Definition {
	return calculator.Definition{
		ID:    "winters_formula",
		Label: "Winters' Formula",
		Fields: []calculator.Field{
			calculator.Number("hco3").Positive(),
			calculator.Number("paco2_mmhg").Positive().Optional(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			expected := 1.5*in.Float("hco3") + 8
			low, high := expected-2, expected+2
			var assessment any
			if in.Has("paco2_mmhg") {
				switch paco2 := in.Float("paco2_mmhg"); {
				case paco2 < low:
					assessment = "concomitant_respiratory_alkalosis"
				case paco2 > high:
					assessment = "concomitant_respiratory_acidosis"
				default:
					assessment = "appropriate_compensation"
				}
			}
			return calculator.Result{
				"expected_paco2":      expected,
				"expected_paco2_low":  low,
				"expected_paco2_high": high,
				"assessment":          assessment,
			}
		},
	}
}
