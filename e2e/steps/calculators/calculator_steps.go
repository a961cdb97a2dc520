package calculators

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers catalog and dispatch step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &calculatorSteps{tc: tc}

	// Catalog
	ctx.Step(`^I list the calculators$`, steps.listCalculators)
	ctx.Step(`^I describe calculator "([^"]*)"$`, steps.describeCalculator)
	ctx.Step(`^the catalog should contain "([^"]*)"$`, steps.catalogShouldContain)
	ctx.Step(`^the descriptor should declare input "([^"]*)"$`, steps.descriptorShouldDeclare)

	// Dispatch
	ctx.Step(`^I run "([^"]*)" with inputs:$`, steps.runWithInputs)
	ctx.Step(`^I run "([^"]*)" at precision (-?\d+) with inputs:$`, steps.runAtPrecision)
	ctx.Step(`^I dispatch "([^"]*)" by name with inputs:$`, steps.dispatchByName)
	ctx.Step(`^I run a batch of:$`, steps.runBatch)
	ctx.Step(`^the missing inputs should be "([^"]*)"$`, steps.missingShouldBe)
}

type calculatorSteps struct {
	tc TestContext
}

func (s *calculatorSteps) listCalculators(ctx context.Context) error {
	return s.tc.GET("/calculators", nil)
}

func (s *calculatorSteps) describeCalculator(ctx context.Context, id string) error {
	return s.tc.GET("/calculators/"+id, nil)
}

func (s *calculatorSteps) catalogShouldContain(ctx context.Context, id string) error {
	v, err := s.tc.GetResponseField("calculators")
	if err != nil {
		return err
	}
	entries, _ := v.([]any)
	for _, e := range entries {
		if m, ok := e.(map[string]any); ok && m["id"] == id {
			return nil
		}
	}
	return fmt.Errorf("calculator %q not in catalog", id)
}

func (s *calculatorSteps) descriptorShouldDeclare(ctx context.Context, key string) error {
	v, err := s.tc.GetResponseField("inputs")
	if err != nil {
		return err
	}
	fields, _ := v.([]any)
	for _, f := range fields {
		if m, ok := f.(map[string]any); ok && m["key"] == key {
			return nil
		}
	}
	return fmt.Errorf("descriptor does not declare input %q", key)
}

func (s *calculatorSteps) runWithInputs(ctx context.Context, id string, table *godog.Table) error {
	inputs, err := inputsFromTable(table)
	if err != nil {
		return err
	}
	return s.tc.POST("/calculators/"+id+"/run", map[string]any{"inputs": inputs})
}

func (s *calculatorSteps) runAtPrecision(ctx context.Context, id string, precision int, table *godog.Table) error {
	inputs, err := inputsFromTable(table)
	if err != nil {
		return err
	}
	return s.tc.POST("/calculators/"+id+"/run", map[string]any{"inputs": inputs, "precision": precision})
}

func (s *calculatorSteps) dispatchByName(ctx context.Context, name string, table *godog.Table) error {
	inputs, err := inputsFromTable(table)
	if err != nil {
		return err
	}
	return s.tc.POST("/run", map[string]any{"name": name, "inputs": inputs})
}

// runBatch expects a table with columns name, input and value. Consecutive
// rows with the same name form one call; an empty input column adds a call
// with no inputs.
func (s *calculatorSteps) runBatch(ctx context.Context, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("batch table needs a header and at least one row")
	}
	var calls []map[string]any
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 3 {
			return fmt.Errorf("batch rows need name, input and value columns")
		}
		name, key, raw := row.Cells[0].Value, row.Cells[1].Value, row.Cells[2].Value
		if len(calls) == 0 || calls[len(calls)-1]["name"] != name {
			calls = append(calls, map[string]any{"name": name, "inputs": map[string]any{}})
		}
		if key == "" {
			continue
		}
		calls[len(calls)-1]["inputs"].(map[string]any)[key] = parseValue(raw)
	}
	return s.tc.POST("/run/batch", map[string]any{"calls": calls})
}

func (s *calculatorSteps) missingShouldBe(ctx context.Context, csv string) error {
	v, err := s.tc.GetResponseField("missing")
	if err != nil {
		return err
	}
	raw, _ := v.([]any)
	got := make([]string, 0, len(raw))
	for _, m := range raw {
		got = append(got, fmt.Sprint(m))
	}
	want := splitList(csv)
	if !slices.Equal(got, want) {
		return fmt.Errorf("expected missing %v, got %v", want, got)
	}
	return nil
}

// inputsFromTable reads a two-column key/value table.
func inputsFromTable(table *godog.Table) (map[string]any, error) {
	inputs := make(map[string]any, len(table.Rows))
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return nil, fmt.Errorf("input rows need key and value columns")
		}
		inputs[row.Cells[0].Value] = parseValue(row.Cells[1].Value)
	}
	return inputs, nil
}

func parseValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return raw
}

func splitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
