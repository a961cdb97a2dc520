package hepatic

import (
	"math"

	"medcalc/internal/calculator"
)

const (
	meldCreatinineCap = 4.0
	meldNaLow         = 125.0
	meldNaHigh        = 137.0
	meldCap           = 40.0
	// meldNaThreshold is the MELD above which the sodium term applies.
	meldNaThreshold = 11.0
)

var meldBands = calculator.MustBands(
	calculator.From(40, "very_high"),
	calculator.From(30, "high"),
	calculator.From(20, "elevated"),
	calculator.From(10, "moderate"),
	calculator.Otherwise("low"),
)

// threeMonthMortality is the observed 90-day mortality for each MELD band.
var threeMonthMortality = map[string]float64{
	"very_high": 71.3,
	"high":      52.6,
	"elevated":  19.6,
	"moderate":  6.0,
	"low":       1.9,
}

func floorOne(v float64) float64 {
	return math.Max(v, 1)
}

// MELDNa is the UNOS MELD(Na) score for end-stage liver disease.
func MELDNa() calculator.Definition {
	return calculator.Definition{
		ID:    "meld_na",
		Label: "MELD Na (UNOS/OPTN)",
		Fields: []calculator.Field{
			calculator.Number("bilirubin_mg_dl").Positive(),
			calculator.Number("inr").Positive(),
			calculator.Number("creatinine_mg_dl").Positive(),
			calculator.Number("sodium").Positive(),
			calculator.Bool("dialysis_twice_past_week"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			bili := floorOne(in.Float("bilirubin_mg_dl"))
			inr := floorOne(in.Float("inr"))
			cr := floorOne(in.Float("creatinine_mg_dl"))
			if in.Bool("dialysis_twice_past_week") || cr > meldCreatinineCap {
				cr = meldCreatinineCap
			}
			na := math.Min(math.Max(in.Float("sodium"), meldNaLow), meldNaHigh)

			meld := math.Round(10 * (0.957*math.Log(cr) + 0.378*math.Log(bili) + 1.120*math.Log(inr) + 0.643))
			meldNa := meld
			if meld > meldNaThreshold {
				meldNa = math.Round(meld + 1.32*(meldNaHigh-na) - 0.033*meld*(meldNaHigh-na))
			}
			meld = math.Min(meld, meldCap)
			meldNa = math.Min(meldNa, meldCap)

			band := meldBands.Classify(meldNa)
			return calculator.Result{
				"meld":                      meld,
				"meld_na":                   meldNa,
				"band":                      band,
				"three_month_mortality_pct": threeMonthMortality[band],
			}
		},
	}
}

var maddreyBands = calculator.MustBands(
	calculator.From(32, "severe"),
	calculator.Otherwise("not_severe"),
)

// MaddreyDF is the discriminant function for alcoholic hepatitis.
func MaddreyDF() calculator.Definition {
	return calculator.Definition{
		ID:    "maddrey_df",
		Label: "Maddrey's Discriminant Function",
		Fields: []calculator.Field{
			calculator.Number("pt_s").Positive(),
			calculator.Number("pt_control_s").Positive(),
			calculator.Number("bilirubin_mg_dl").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			df := 4.6*(in.Float("pt_s")-in.Float("pt_control_s")) + in.Float("bilirubin_mg_dl")
			return calculator.Result{
				"df":   df,
				"band": maddreyBands.Classify(df),
			}
		},
	}
}
