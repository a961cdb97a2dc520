// Package calculators assembles the calculator modules into a registry.
package calculators

import (
	"medcalc/internal/calculator"
	"medcalc/internal/calculators/acidbase"
	"medcalc/internal/calculators/anthro"
	"medcalc/internal/calculators/cardio"
	"medcalc/internal/calculators/conversions"
	"medcalc/internal/calculators/critical"
	"medcalc/internal/calculators/hematology"
	"medcalc/internal/calculators/hepatic"
	"medcalc/internal/calculators/lipids"
	"medcalc/internal/calculators/renal"
	"medcalc/internal/calculators/screening"
)

// Modules lists every catalog module in registration order.
func Modules() []calculator.Module {
	return []calculator.Module{
		acidbase.Module{},
		renal.Module{},
		cardio.Module{},
		hepatic.Module{},
		critical.Module{},
		lipids.Module{},
		anthro.Module{},
		hematology.Module{},
		conversions.Module{},
		screening.Module{},
	}
}

// NewRegistry installs every catalog module and returns the frozen registry.
func NewRegistry() (*calculator.Registry, error) {
	reg := calculator.NewRegistry()
	if err := calculator.Install(reg, Modules()...); err != nil {
		return nil, err
	}
	return reg, nil
}

// NewEngine is NewRegistry wrapped in an engine.
func NewEngine() (*calculator.Engine, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return calculator.NewEngine(reg), nil
}
