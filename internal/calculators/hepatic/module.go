// Package hepatic holds liver disease severity and fibrosis scores.
package hepatic

import "medcalc/internal/calculator"

// Module registers the hepatic calculators.
type Module struct{}

func (Module) Name() string { return "hepatic" }

func (Module) Register(r *calculator.Registry) error {
	return r.RegisterAll(
		MELDNa(),
		ChildPugh(),
		FIB4(),
		APRI(),
		MaddreyDF(),
	)
}
