package cardio

import (
	"math"

	"medcalc/internal/calculator"
)

const (
	qtcProlongedMale   = 450.0
	qtcProlongedFemale = 470.0
	qtcMarked          = 500.0
)

// QTc corrects the QT interval for heart rate with the four common formulas.
// The interpretation uses Bazett and needs sex for the prolongation cutoff.
func QTc() calculator.Definition {
	return calculator.Definition{
		ID:    "qtc",
		Label: "Corrected QT Interval",
		Fields: []calculator.Field{
			calculator.Number("qt_ms").Positive(),
			calculator.Number("heart_rate").Positive(),
			calculator.Enum("sex", "male", "female").Optional(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			qt := in.Float("qt_ms")
			hr := in.Float("heart_rate")
			rr := 60 / hr
			bazett := qt / math.Sqrt(rr)

			var interpretation any
			if in.Has("sex") {
				limit := qtcProlongedMale
				if in.String("sex") == "female" {
					limit = qtcProlongedFemale
				}
				switch {
				case bazett > qtcMarked:
					interpretation = "markedly_prolonged"
				case bazett > limit:
					interpretation = "prolonged"
				default:
					interpretation = "normal"
				}
			}
			return calculator.Result{
				"rr_s":           rr,
				"qtc_bazett":     bazett,
				"qtc_fridericia": qt / math.Cbrt(rr),
				"qtc_framingham": qt + 154*(1-rr),
				"qtc_hodges":     qt + 1.75*(hr-60),
				"interpretation": interpretation,
			}
		},
	}
}

// MeanArterialPressure estimates MAP from cuff pressures.
func MeanArterialPressure() calculator.Definition {
	return calculator.Definition{
		ID:    "mean_arterial_pressure",
		Label: "Mean Arterial Pressure",
		Fields: []calculator.Field{
			calculator.Number("sbp").Positive(),
			calculator.Number("dbp").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			sbp, dbp := in.Float("sbp"), in.Float("dbp")
			if dbp > sbp {
				return calculator.Result{"valid": false, "map_mmhg": nil, "pulse_pressure": nil}
			}
			return calculator.Result{
				"valid":          true,
				"map_mmhg":       dbp + (sbp-dbp)/3,
				"pulse_pressure": sbp - dbp,
			}
		},
	}
}

var shockIndexBands = calculator.MustBands(
	calculator.From(1, "high"),
	calculator.From(0.7, "borderline"),
	calculator.Otherwise("normal"),
)

// ShockIndex is heart rate over systolic pressure.
func ShockIndex() calculator.Definition {
	return calculator.Definition{
		ID:    "shock_index",
		Label: "Shock Index",
		Fields: []calculator.Field{
			calculator.Number("heart_rate").AtLeast(0),
			calculator.Number("sbp").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			si := in.Float("heart_rate") / in.Float("sbp")
			return calculator.Result{
				"shock_index": si,
				"band":        shockIndexBands.Classify(si),
			}
		},
	}
}
