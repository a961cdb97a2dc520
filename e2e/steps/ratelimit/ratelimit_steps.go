package ratelimit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetLastResponseHeader(name string) string
}

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I run "([^"]*)" (\d+) times$`, steps.runNTimes)
	ctx.Step(`^I exhaust the dispatch limit running "([^"]*)"$`, steps.exhaustDispatchLimit)
	ctx.Step(`^every call should have succeeded$`, steps.everyCallSucceeded)
	ctx.Step(`^the remaining dispatch budget should be (\d+) less than the limit$`, steps.remainingShouldBe)
	ctx.Step(`^the request should be rate limited$`, steps.shouldBeRateLimited)
}

type ratelimitSteps struct {
	tc TestContext
	// State for tracking across steps
	statuses []int
}

var anionGapInputs = map[string]any{"na": 140, "cl": 104, "hco3": 24}

func (s *ratelimitSteps) run(id string) error {
	if err := s.tc.POST("/calculators/"+id+"/run", map[string]any{"inputs": anionGapInputs}); err != nil {
		return err
	}
	s.statuses = append(s.statuses, s.tc.GetLastResponseStatus())
	return nil
}

func (s *ratelimitSteps) runNTimes(ctx context.Context, id string, n int) error {
	s.statuses = s.statuses[:0]
	for range n {
		if err := s.run(id); err != nil {
			return err
		}
	}
	return nil
}

// exhaustDispatchLimit reads the advertised limit from the first response and
// keeps calling until the budget is spent, then makes one more call.
func (s *ratelimitSteps) exhaustDispatchLimit(ctx context.Context, id string) error {
	s.statuses = s.statuses[:0]
	if err := s.run(id); err != nil {
		return err
	}
	remaining, err := strconv.Atoi(s.tc.GetLastResponseHeader("X-RateLimit-Remaining"))
	if err != nil {
		return fmt.Errorf("missing X-RateLimit-Remaining header: %w", err)
	}
	for range remaining + 1 {
		if err := s.run(id); err != nil {
			return err
		}
	}
	return nil
}

func (s *ratelimitSteps) everyCallSucceeded(ctx context.Context) error {
	for i, status := range s.statuses {
		if status != 200 {
			return fmt.Errorf("call %d returned %d", i+1, status)
		}
	}
	return nil
}

func (s *ratelimitSteps) remainingShouldBe(ctx context.Context, used int) error {
	limit, err := strconv.Atoi(s.tc.GetLastResponseHeader("X-RateLimit-Limit"))
	if err != nil {
		return fmt.Errorf("missing X-RateLimit-Limit header: %w", err)
	}
	remaining, err := strconv.Atoi(s.tc.GetLastResponseHeader("X-RateLimit-Remaining"))
	if err != nil {
		return fmt.Errorf("missing X-RateLimit-Remaining header: %w", err)
	}
	if remaining != limit-used {
		return fmt.Errorf("expected remaining %d, got %d", limit-used, remaining)
	}
	return nil
}

func (s *ratelimitSteps) shouldBeRateLimited(ctx context.Context) error {
	if status := s.tc.GetLastResponseStatus(); status != 429 {
		return fmt.Errorf("expected 429, got %d: %s", status, s.tc.GetLastResponseBody())
	}
	if s.tc.GetLastResponseHeader("Retry-After") == "" {
		return fmt.Errorf("429 without Retry-After header")
	}
	return nil
}
