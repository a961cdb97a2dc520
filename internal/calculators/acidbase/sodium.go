package acidbase

import (
	"math"

	"medcalc/internal/calculator"
)

const (
	calciumAlbuminFactor = 0.8
	katzFactor           = 0.016
	hillierFactor        = 0.024
	referenceGlucose     = 100.0
	defaultTargetNa      = 140.0
)

// CorrectedCalcium adjusts total calcium for low albumin.
func CorrectedCalcium() calculator.Definition {
	return calculator.Definition{
		ID:    "corrected_calcium",
		Label: "Calcium Correction for Hypoalbuminemia",
		Fields: []calculator.Field{
			calculator.Number("calcium_mg_dl").Positive(),
			calculator.Number("albumin_g_dl").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			return calculator.Result{
				"corrected_calcium_mg_dl": in.Float("calcium_mg_dl") +
					calciumAlbuminFactor*(normalAlbuminGdL-in.Float("albumin_g_dl")),
			}
		},
	}
}

// CorrectedSodiumGlucose corrects sodium for hyperglycemia with both the
// Katz and Hillier factors.
func CorrectedSodiumGlucose() calculator.Definition {
	return calculator.Definition{
		ID:    "corrected_sodium_glucose",
		Label: "Sodium Correction for Hyperglycemia",
		Fields: []calculator.Field{
			calculator.Number("na").Positive(),
			calculator.Number("glucose_mg_dl").AtLeast(0),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			excess := in.Float("glucose_mg_dl") - referenceGlucose
			na := in.Float("na")
			return calculator.Result{
				"corrected_na_katz":    na + katzFactor*excess,
				"corrected_na_hillier": na + hillierFactor*excess,
			}
		},
	}
}

// totalBodyWaterFraction follows the age and sex adjusted TBW estimates.
func totalBodyWaterFraction(sex string, age float64) float64 {
	elderly := age >= 65
	switch {
	case sex == "male" && elderly:
		return 0.5
	case sex == "male":
		return 0.6
	case elderly:
		return 0.45
	default:
		return 0.5
	}
}

// FreeWaterDeficit estimates the water needed to bring sodium down to target.
// Only defined for hypernatremia relative to the target.
func FreeWaterDeficit() calculator.Definition {
	return calculator.Definition{
		ID:    "free_water_deficit",
		Label: "Free Water Deficit",
		Fields: []calculator.Field{
			calculator.Number("na").Positive(),
			calculator.Number("weight_kg").Positive(),
			calculator.Number("age").Between(0, 130),
			calculator.Enum("sex", "male", "female"),
			calculator.Number("target_na").Positive().Optional(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			target := in.FloatOr("target_na", defaultTargetNa)
			fraction := totalBodyWaterFraction(in.String("sex"), in.Float("age"))
			tbw := fraction * in.Float("weight_kg")
			na := in.Float("na")
			if na <= target {
				return calculator.Result{
					"valid":                false,
					"tbw_l":                tbw,
					"free_water_deficit_l": nil,
				}
			}
			return calculator.Result{
				"valid":                true,
				"tbw_l":                tbw,
				"free_water_deficit_l": tbw * (na/target - 1),
			}
		},
	}
}

// The exact 10 mmol/L per 24h limit is classified as caution, not unsafe.
var correctionRateBands = calculator.MustBands(
	calculator.Above(10, "unsafe"),
	calculator.From(8, "caution"),
	calculator.Otherwise("safe"),
)

// SodiumCorrectionRate projects a 24 hour sodium change from two samples.
func SodiumCorrectionRate() calculator.Definition {
	return calculator.Definition{
		ID:    "sodium_correction_rate",
		Label: "Sodium Correction Rate",
		Fields: []calculator.Field{
			calculator.Number("initial_na").Positive(),
			calculator.Number("current_na").Positive(),
			calculator.Number("hours").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			delta := in.Float("current_na") - in.Float("initial_na")
			perHour := delta / in.Float("hours")
			per24 := math.Abs(perHour) * 24
			return calculator.Result{
				"change_mmol_l":        delta,
				"rate_mmol_l_per_h":    perHour,
				"projected_24h_change": per24,
				"band":                 correctionRateBands.Classify(per24),
			}
		},
	}
}
