package hepatic

import (
	"math"

	"medcalc/internal/calculator"
)

const defaultASTUpperLimit = 40.0

var fib4Bands = calculator.MustBands(
	calculator.Above(2.67, "advanced_fibrosis_likely"),
	calculator.From(1.30, "indeterminate"),
	calculator.Otherwise("advanced_fibrosis_unlikely"),
)

// FIB4 is the fibrosis-4 index.
func FIB4() calculator.Definition {
	return calculator.Definition{
		ID:    "fib4",
		Label: "Fibrosis-4 (FIB-4) Index",
		Fields: []calculator.Field{
			calculator.Number("age").Between(0, 130),
			calculator.Number("ast").Positive(),
			calculator.Number("alt").Positive(),
			calculator.Number("platelets_10e9_l").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			fib4 := in.Float("age") * in.Float("ast") /
				(in.Float("platelets_10e9_l") * math.Sqrt(in.Float("alt")))
			return calculator.Result{
				"fib4": fib4,
				"band": fib4Bands.Classify(fib4),
			}
		},
	}
}

var apriBands = calculator.MustBands(
	calculator.From(2, "cirrhosis_likely"),
	calculator.From(1.5, "significant_fibrosis_likely"),
	calculator.From(0.5, "indeterminate"),
	calculator.Otherwise("significant_fibrosis_unlikely"),
)

// APRI is the AST to platelet ratio index.
func APRI() calculator.Definition {
	return calculator.Definition{
		ID:    "apri",
		Label: "AST to Platelet Ratio Index",
		Fields: []calculator.Field{
			calculator.Number("ast").Positive(),
			calculator.Number("platelets_10e9_l").Positive(),
			calculator.Number("ast_uln").Positive().Optional(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			uln := in.FloatOr("ast_uln", defaultASTUpperLimit)
			apri := in.Float("ast") / uln / in.Float("platelets_10e9_l") * 100
			return calculator.Result{
				"apri": apri,
				"band": apriBands.Classify(apri),
			}
		},
	}
}

var childPughAscites = map[string]float64{"none": 1, "slight": 2, "moderate_severe": 3}

var childPughEncephalopathy = map[string]float64{"none": 1, "grade_1_2": 2, "grade_3_4": 3}

var childPughClasses = calculator.MustBands(
	calculator.From(10, "C"),
	calculator.From(7, "B"),
	calculator.From(5, "A"),
)

// tiered scores 1 below mid, 2 up to high and 3 above high.
func tiered(v, mid, high float64) float64 {
	switch {
	case v > high:
		return 3
	case v >= mid:
		return 2
	default:
		return 1
	}
}

// ChildPugh grades cirrhosis severity.
func ChildPugh() calculator.Definition {
	return calculator.Definition{
		ID:    "child_pugh",
		Label: "Child-Pugh Score",
		Fields: []calculator.Field{
			calculator.Number("bilirubin_mg_dl").Positive(),
			calculator.Number("albumin_g_dl").Positive(),
			calculator.Number("inr").Positive(),
			calculator.Enum("ascites", "none", "slight", "moderate_severe"),
			calculator.Enum("encephalopathy", "none", "grade_1_2", "grade_3_4"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			albumin := 1.0
			switch a := in.Float("albumin_g_dl"); {
			case a < 2.8:
				albumin = 3
			case a <= 3.5:
				albumin = 2
			}
			score := tiered(in.Float("bilirubin_mg_dl"), 2, 3) +
				albumin +
				tiered(in.Float("inr"), 1.7, 2.3) +
				childPughAscites[in.String("ascites")] +
				childPughEncephalopathy[in.String("encephalopathy")]
			return calculator.Result{
				"score": score,
				"class": childPughClasses.Classify(score),
			}
		},
	}
}
