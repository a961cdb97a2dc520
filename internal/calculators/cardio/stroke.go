package cardio

import "medcalc/internal/calculator"

var cha2ds2Bands = calculator.MustBands(
	calculator.From(2, "high"),
	calculator.From(1, "moderate"),
	calculator.From(0, "low"),
)

// CHA2DS2VASc scores stroke risk in atrial fibrillation.
func CHA2DS2VASc() calculator.Definition {
	return calculator.Definition{
		ID:    "cha2ds2_vasc",
		Label: "CHA2DS2-VASc Score",
		Fields: []calculator.Field{
			calculator.Bool("chf"),
			calculator.Bool("htn"),
			calculator.Number("age").Between(0, 130),
			calculator.Bool("dm"),
			calculator.Bool("stroke_tia_thromboembolism"),
			calculator.Bool("vascular_disease"),
			calculator.Bool("female_sex"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			age := in.Float("age")
			score := calculator.Points(in.Bool("chf"), 1) +
				calculator.Points(in.Bool("htn"), 1) +
				calculator.Points(age >= 75, 2) +
				calculator.Points(age >= 65 && age < 75, 1) +
				calculator.Points(in.Bool("dm"), 1) +
				calculator.Points(in.Bool("stroke_tia_thromboembolism"), 2) +
				calculator.Points(in.Bool("vascular_disease"), 1) +
				calculator.Points(in.Bool("female_sex"), 1)
			return calculator.Result{
				"score": score,
				"band":  cha2ds2Bands.Classify(score),
			}
		},
	}
}

var hasBledBands = calculator.MustBands(
	calculator.From(3, "high"),
	calculator.From(1, "moderate"),
	calculator.From(0, "low"),
)

// HASBLED scores major bleeding risk on anticoagulation.
func HASBLED() calculator.Definition {
	return calculator.Definition{
		ID:    "has_bled",
		Label: "HAS-BLED Score",
		Fields: []calculator.Field{
			calculator.Bool("uncontrolled_htn"),
			calculator.Bool("abnormal_renal_function"),
			calculator.Bool("abnormal_liver_function"),
			calculator.Bool("stroke_history"),
			calculator.Bool("bleeding_history"),
			calculator.Bool("labile_inr"),
			calculator.Number("age").Between(0, 130),
			calculator.Bool("bleeding_medication"),
			calculator.Bool("alcohol_use"),
		},
		Compute: func(in calculator.Inputs) calculator.Result {
			score := calculator.Points(in.Bool("uncontrolled_htn"), 1) +
				calculator.Points(in.Bool("abnormal_renal_function"), 1) +
				calculator.Points(in.Bool("abnormal_liver_function"), 1) +
				calculator.Points(in.Bool("stroke_history"), 1) +
				calculator.Points(in.Bool("bleeding_history"), 1) +
				calculator.Points(in.Bool("labile_inr"), 1) +
				calculator.Points(in.Float("age") > 65, 1) +
				calculator.Points(in.Bool("bleeding_medication"), 1) +
				calculator.Points(in.Bool("alcohol_use"), 1)
			return calculator.Result{
				"score": score,
				"band":  hasBledBands.Classify(score),
			}
		},
	}
}
