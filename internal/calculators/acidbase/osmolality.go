package acidbase

import "medcalc/internal/calculator"

const (
	glucoseOsmDivisor = 18.0
	bunOsmDivisor     = 2.8
	ethanolOsmDivisor = 3.7
)

var osmolalGapBands = calculator.MustBands(
	calculator.Above(10, "elevated"),
	calculator.Otherwise("normal"),
)

func osmolalityFields() []calculator.Field {
	return []calculator.Field{
		calculator.Number("na").Positive(),
		calculator.Number("glucose_mg_dl").AtLeast(0),
		calculator.Number("bun_mg_dl").AtLeast(0),
		calculator.Number("ethanol_mg_dl").AtLeast(0).Optional(),
	}
}

func calculatedOsmolality(in calculator.Inputs) float64 {
	return 2*in.Float("na") +
		in.Float("glucose_mg_dl")/glucoseOsmDivisor +
		in.Float("bun_mg_dl")/bunOsmDivisor +
		in.FloatOr("ethanol_mg_dl", 0)/ethanolOsmDivisor
}

// SerumOsmolality estimates serum osmolality, including ethanol when supplied.
func SerumOsmolality() calculator.Definition {
	return calculator.Definition{
		ID:     "serum_osmolality",
		Label:  "Calculated Serum Osmolality",
		Fields: osmolalityFields(),
		Compute: func(in calculator.Inputs) calculator.Result {
			return calculator.Result{
				"osm_calc": calculatedOsmolality(in),
			}
		},
	}
}

// OsmolalGap is measured minus calculated osmolality.
func OsmolalGap() calculator.Definition {
	fields := append([]calculator.Field{calculator.Number("measured_osm").Positive()}, osmolalityFields()...)
	return calculator.Definition{
		ID:     "osmolal_gap",
		Label:  "Osmolal Gap",
		Fields: fields,
		Compute: func(in calculator.Inputs) calculator.Result {
			calc := calculatedOsmolality(in)
			gap := in.Float("measured_osm") - calc
			return calculator.Result{
				"osm_calc":    calc,
				"osmolal_gap": gap,
				"band":        osmolalGapBands.Classify(gap),
			}
		},
	}
}
