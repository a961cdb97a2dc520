// Package acidbase holds acid-base and electrolyte calculators.
package acidbase

import "medcalc/internal/calculator"

// Module registers the acid-base and electrolyte calculators.
type Module struct{}

func (Module) Name() string { return "acidbase" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(
		AnionGap(),
		AnionGapCorrected(),
		DeltaRatio(),
		WintersFormula(),
		SerumOsmolality(),
		OsmolalGap(),
		CorrectedCalcium(),
		CorrectedSodiumGlucose(),
		FreeWaterDeficit(),
		SodiumCorrectionRate(),
	)
}
