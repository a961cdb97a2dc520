// Package lipids holds lipid panel calculators.
package lipids

import "medcalc/internal/calculator"

const (
	// friedewaldMaxTrig is the highest triglyceride level for which the
	// Friedewald estimate holds.
	friedewaldMaxTrig     = 400.0
	cholesterolMmolFactor = 0.02586
)

// Module registers the lipid calculators.
type Module struct{}

func (Module) Name() string { return "lipids" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(LDLFriedewald(), NonHDLCholesterol())
}

var ldlBands = calculator.MustBands(
	calculator.From(190, "very_high"),
	calculator.From(160, "high"),
	calculator.From(130, "borderline_high"),
	calculator.From(100, "near_optimal"),
	calculator.Otherwise("optimal"),
)

var nonHDLBands = calculator.MustBands(
	calculator.From(220, "very_high"),
	calculator.From(190, "high"),
	calculator.From(160, "borderline_high"),
	calculator.From(130, "near_optimal"),
	calculator.Otherwise("optimal"),
)

func panelFields() []calculator.Field {
	return []calculator.Field{
		calculator.Number("total_chol_mg_dl").Positive(),
		calculator.Number("hdl_mg_dl").Positive(),
	}
}

// LDLFriedewald estimates LDL cholesterol as TC - HDL - TG/5.
func LDLFriedewald() calculator.Definition {
	return calculator.Definition{
		ID:     "ldl_friedewald",
		Label:  "LDL Cholesterol (Friedewald)",
		Fields: append(panelFields(), calculator.Number("trig_mg_dl").AtLeast(0)),
		Compute: func(in calculator.Inputs) calculator.Result {
			if in.Float("trig_mg_dl") > friedewaldMaxTrig {
				return calculator.Result{
					"valid":      false,
					"ldl_mg_dl":  nil,
					"ldl_mmol_l": nil,
					"band":       nil,
				}
			}
			ldl := in.Float("total_chol_mg_dl") - in.Float("hdl_mg_dl") - in.Float("trig_mg_dl")/5
			return calculator.Result{
				"valid":      true,
				"ldl_mg_dl":  ldl,
				"ldl_mmol_l": ldl * cholesterolMmolFactor,
				"band":       ldlBands.Classify(ldl),
			}
		},
	}
}

// NonHDLCholesterol is total cholesterol minus HDL.
func NonHDLCholesterol() calculator.Definition {
	return calculator.Definition{
		ID:     "non_hdl_cholesterol",
		Label:  "Non-HDL Cholesterol",
		Fields: panelFields(),
		Compute: func(in calculator.Inputs) calculator.Result {
			v := in.Float("total_chol_mg_dl") - in.Float("hdl_mg_dl")
			return calculator.Result{
				"non_hdl_mg_dl":  v,
				"non_hdl_mmol_l": v * cholesterolMmolFactor,
				"band":           nonHDLBands.Classify(v),
			}
		},
	}
}
