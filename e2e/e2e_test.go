package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs the feature files against a live server. Start one with
// `go run ./cmd/server` and point MEDCALC_E2E_URL at it.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("MEDCALC_E2E_URL")
	if baseURL == "" {
		t.Skip("MEDCALC_E2E_URL not set")
	}
	tc := NewTestContext(baseURL)

	suite := godog.TestSuite{
		Name: "medcalc",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			RegisterSteps(sc, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Tags:     os.Getenv("MEDCALC_E2E_TAGS"),
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature run failed")
	}
}
