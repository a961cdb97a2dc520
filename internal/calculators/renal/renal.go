// Package renal holds kidney function calculators.
package renal

import (
	"math"

	"medcalc/internal/calculator"
)

// Module registers the renal calculators.
type Module struct{}

func (Module) Name() string { return "renal" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(
		CockcroftGault(),
		EGFRCKDEPI2021(),
		FENa(),
		FEUrea(),
		BUNCreatinineRatio(),
	)
}

// CockcroftGault estimates creatinine clearance in mL/min.
func CockcroftGault() calculator.Definition {
	return calculator.Definition{
		ID:    "creatinine_clearance_cockcroft_gault",
		Label: "Creatinine Clearance (Cockcroft-Gault)",
		Fields: []calculator.Field{
			calculator.Number("age").Between(0, 130),
			calculator.Number("weight_kg").Positive(),
			calculator.Number("creatinine_mg_dl").Positive(),
			calculator.Enum("sex", "male", "female"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			crcl := (140 - in.Float("age")) * in.Float("weight_kg") / (72 * in.Float("creatinine_mg_dl"))
			if in.String("sex") == "female" {
				crcl *= 0.85
			}
			return calculator.Result{"crcl_ml_min": crcl}
		},
	}
}

var ckdStages = calculator.MustBands(
	calculator.From(90, "G1"),
	calculator.From(60, "G2"),
	calculator.From(45, "G3a"),
	calculator.From(30, "G3b"),
	calculator.From(15, "G4"),
	calculator.Otherwise("G5"),
)

// EGFRCKDEPI2021 is the race-free 2021 CKD-EPI creatinine equation.
func EGFRCKDEPI2021() calculator.Definition {
	return calculator.Definition{
		ID:    "egfr_ckd_epi_2021",
		Label: "eGFR (CKD-EPI 2021)",
		Fields: []calculator.Field{
			calculator.Number("creatinine_mg_dl").Positive(),
			calculator.Number("age").Between(18, 130),
			calculator.Enum("sex", "male", "female"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			kappa, alpha, factor := 0.9, -0.302, 1.0
			if in.String("sex") == "female" {
				kappa, alpha, factor = 0.7, -0.241, 1.012
			}
			ratio := in.Float("creatinine_mg_dl") / kappa
			egfr := 142 *
				math.Pow(math.Min(ratio, 1), alpha) *
				math.Pow(math.Max(ratio, 1), -1.200) *
				math.Pow(0.9938, in.Float("age")) *
				factor
			return calculator.Result{
				"egfr":  egfr,
				"stage": ckdStages.Classify(egfr),
			}
		},
	}
}

var fenaBands = calculator.MustBands(
	calculator.Above(2, "intrinsic_renal"),
	calculator.From(1, "indeterminate"),
	calculator.Otherwise("prerenal"),
)

var feureaBands = calculator.MustBands(
	calculator.Above(50, "intrinsic_renal"),
	calculator.Above(35, "indeterminate"),
	calculator.Otherwise("prerenal"),
)

func fractionalExcretion(in calculator.Inputs, urine, plasma string) float64 {
	return in.Float(urine) * in.Float("plasma_creatinine") /
		(in.Float(plasma) * in.Float("urine_creatinine")) * 100
}

// FENa is the fractional excretion of sodium.
func FENa() calculator.Definition {
	return calculator.Definition{
		ID:    "fena",
		Label: "Fractional Excretion of Sodium",
		Fields: []calculator.Field{
			calculator.Number("urine_na").AtLeast(0),
			calculator.Number("plasma_na").Positive(),
			calculator.Number("urine_creatinine").Positive(),
			calculator.Number("plasma_creatinine").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			fe := fractionalExcretion(in, "urine_na", "plasma_na")
			return calculator.Result{
				"fena_pct": fe,
				"band":     fenaBands.Classify(fe),
			}
		},
	}
}

// FEUrea is the fractional excretion of urea, usable on diuretics.
func FEUrea() calculator.Definition {
	return calculator.Definition{
		ID:    "feurea",
		Label: "Fractional Excretion of Urea",
		Fields: []calculator.Field{
			calculator.Number("urine_urea").AtLeast(0),
			calculator.Number("plasma_urea").Positive(),
			calculator.Number("urine_creatinine").Positive(),
			calculator.Number("plasma_creatinine").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			fe := fractionalExcretion(in, "urine_urea", "plasma_urea")
			return calculator.Result{
				"feurea_pct": fe,
				"band":       feureaBands.Classify(fe),
			}
		},
	}
}

var bunRatioBands = calculator.MustBands(
	calculator.Above(20, "prerenal"),
	calculator.From(10, "normal_or_intrinsic"),
	calculator.Otherwise("low"),
)

// BUNCreatinineRatio is BUN divided by serum creatinine.
func BUNCreatinineRatio() calculator.Definition {
	return calculator.Definition{
		ID:    "bun_creatinine_ratio",
		Label: "BUN/Creatinine Ratio",
		Fields: []calculator.Field{
			calculator.Number("bun_mg_dl").AtLeast(0),
			calculator.Number("creatinine_mg_dl").Positive(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			ratio := in.Float("bun_mg_dl") / in.Float("creatinine_mg_dl")
			return calculator.Result{
				"ratio": ratio,
				"band":  bunRatioBands.Classify(ratio),
			}
		},
	}
}
