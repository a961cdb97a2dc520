// Package critical holds sepsis, pneumonia severity, neurologic, oxygenation
// and fluid resuscitation calculators.
package critical

import "medcalc/internal/calculator"

// Module registers the critical care calculators.
type Module struct{}

func (Module) Name() string { return "critical" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(
		QSOFA(),
		SIRS(),
		CURB65(),
		GlasgowComaScale(),
		PFRatio(),
		AAGradient(),
		ParklandFormula(),
		MaintenanceFluids(),
	)
}
