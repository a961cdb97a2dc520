// Package cardio holds cardiovascular risk scores and hemodynamic formulas.
package cardio

import "medcalc/internal/calculator"

// Module registers the cardiovascular calculators.
type Module struct{}

func (Module) Name() string { return "cardio" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(
		CHA2DS2VASc(),
		HASBLED(),
		HEARTScore(),
		WellsPE(),
		PERC(),
		TIMIUnstableAngina(),
		QTc(),
		MeanArterialPressure(),
		ShockIndex(),
	)
}
