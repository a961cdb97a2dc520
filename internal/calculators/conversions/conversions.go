// Package conversions holds laboratory unit conversions. Each factor is fixed
// per analyte.
package conversions

import "medcalc/internal/calculator"

const (
	glucoseMgPerMmol      = 18.016
	creatinineUmolPerMg   = 88.42
	cholesterolMgPerMmol  = 38.67
	triglycerideMgPerMmol = 88.57
)

// Module registers the unit conversion calculators.
type Module struct{}

func (Module) Name() string { return "conversions" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(
		GlucoseConversion(),
		CreatinineConversion(),
		CholesterolConversion(),
		HbA1cEAG(),
	)
}

// GlucoseConversion converts glucose mg/dL to mmol/L.
func GlucoseConversion() calculator.Definition {
	return calculator.Definition{
		ID:     "glucose_unit_conversion",
		Label:  "Glucose Unit Conversion",
		Fields: []calculator.Field{calculator.Number("glucose_mg_dl").AtLeast(0)},
		Compute: func(in calculator.Inputs) calculator.Result {
			return calculator.Result{"glucose_mmol_l": in.Float("glucose_mg_dl") / glucoseMgPerMmol}
		},
	}
}

// CreatinineConversion converts creatinine mg/dL to µmol/L.
func CreatinineConversion() calculator.Definition {
	return calculator.Definition{
		ID:     "creatinine_unit_conversion",
		Label:  "Creatinine Unit Conversion",
		Fields: []calculator.Field{calculator.Number("creatinine_mg_dl").AtLeast(0)},
		Compute: func(in calculator.Inputs) calculator.Result {
			return calculator.Result{"creatinine_umol_l": in.Float("creatinine_mg_dl") * creatinineUmolPerMg}
		},
	}
}

var lipidFactors = map[string]float64{
	"cholesterol":   cholesterolMgPerMmol,
	"triglycerides": triglycerideMgPerMmol,
}

// CholesterolConversion converts a lipid value from mg/dL to mmol/L.
func CholesterolConversion() calculator.Definition {
	return calculator.Definition{
		ID:    "cholesterol_unit_conversion",
		Label: "Cholesterol/Triglyceride Unit Conversion",
		Fields: []calculator.Field{
			calculator.Enum("analyte", "cholesterol", "triglycerides"),
			calculator.Number("value_mg_dl").AtLeast(0),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			return calculator.Result{
				"value_mmol_l": in.Float("value_mg_dl") / lipidFactors[in.String("analyte")],
			}
		},
	}
}

// HbA1cEAG estimates average glucose from HbA1c (ADAG) and converts the
// NGSP percentage to IFCC units.
func HbA1cEAG() calculator.Definition {
	return calculator.Definition{
		ID:     "hba1c_eag",
		Label:  "HbA1c to Estimated Average Glucose",
		Fields: []calculator.Field{calculator.Number("hba1c_pct").Between(2, 20)},
		Compute: func(in calculator.Inputs) calculator.Result {
			a1c := in.Float("hba1c_pct")
			return calculator.Result{
				"eag_mg_dl":     28.7*a1c - 46.7,
				"eag_mmol_l":    1.59*a1c - 2.59,
				"ifcc_mmol_mol": (a1c - 2.15) * 10.929,
			}
		},
	}
}
