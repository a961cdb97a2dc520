// Package anthro holds body size calculators.
package anthro

import (
	"math"

	"medcalc/internal/calculator"
)

const (
	cmPerInch = 2.54
	// devineMinHeightCm is five feet, the shortest height Devine applies to.
	devineMinHeightCm    = 152.4
	adjustedWeightFactor = 0.4
)

// Module registers the anthropometric calculators.
type Module struct{}

func (Module) Name() string { return "anthro" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(BMI(), BSA(), IdealBodyWeight())
}

func sizeFields() []calculator.Field {
	return []calculator.Field{
		calculator.Number("weight_kg").Positive(),
		calculator.Number("height_cm").Positive(),
	}
}

var bmiBands = calculator.MustBands(
	calculator.From(40, "obese_class_3"),
	calculator.From(35, "obese_class_2"),
	calculator.From(30, "obese_class_1"),
	calculator.From(25, "overweight"),
	calculator.From(18.5, "normal"),
	calculator.Otherwise("underweight"),
)

// BMI is weight over height squared with WHO categories.
func BMI() calculator.Definition {
	return calculator.Definition{
		ID:     "bmi",
		Label:  "Body Mass Index",
		Fields: sizeFields(),
		Compute: func(in calculator.Inputs) calculator.Result {
			m := in.Float("height_cm") / 100
			bmi := in.Float("weight_kg") / (m * m)
			return calculator.Result{
				"bmi":  bmi,
				"band": bmiBands.Classify(bmi),
			}
		},
	}
}

// BSA reports body surface area by Mosteller and Du Bois.
func BSA() calculator.Definition {
	return calculator.Definition{
		ID:     "bsa_mosteller",
		Label:  "Body Surface Area (Mosteller)",
		Fields: sizeFields(),
		Compute: func(in calculator.Inputs) calculator.Result {
			w, h := in.Float("weight_kg"), in.Float("height_cm")
			return calculator.Result{
				"bsa_m2":        math.Sqrt(w * h / 3600),
				"bsa_dubois_m2": 0.007184 * math.Pow(w, 0.425) * math.Pow(h, 0.725),
			}
		},
	}
}

// IdealBodyWeight uses the Devine formula, which is undefined under five feet.
// Adjusted body weight is reported when actual weight is supplied.
func IdealBodyWeight() calculator.Definition {
	return calculator.Definition{
		ID:    "ideal_body_weight",
		Label: "Ideal Body Weight (Devine)",
		Fields: []calculator.Field{
			calculator.Number("height_cm").Positive(),
			calculator.Enum("sex", "male", "female"),
			calculator.Number("weight_kg").Positive().Optional(),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			h := in.Float("height_cm")
			if h < devineMinHeightCm {
				return calculator.Result{"valid": false, "ibw_kg": nil, "adjusted_bw_kg": nil}
			}
			base := 50.0
			if in.String("sex") == "female" {
				base = 45.5
			}
			ibw := base + 2.3*(h/cmPerInch-60)
			var adjusted any
			if in.Has("weight_kg") {
				adjusted = ibw + adjustedWeightFactor*(in.Float("weight_kg")-ibw)
			}
			return calculator.Result{
				"valid":          true,
				"ibw_kg":         ibw,
				"adjusted_bw_kg": adjusted,
			}
		},
	}
}
