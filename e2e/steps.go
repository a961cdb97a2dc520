package e2e

import (
	"github.com/cucumber/godog"

	"medcalc/e2e/steps/calculators"
	"medcalc/e2e/steps/common"
	"medcalc/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register catalog and dispatch steps
	calculators.RegisterSteps(ctx, tc)

	// Register rate limiting steps
	ratelimit.RegisterSteps(ctx, tc)
}
