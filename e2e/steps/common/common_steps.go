package common

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	POSTRaw(path, body string) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetLastResponseHeader(name string) string
	SetClientIP(ip string)
}

// RegisterSteps registers background, request and assertion steps shared by
// every feature.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	// Background
	ctx.Step(`^the medcalc server is running$`, steps.serverIsRunning)
	ctx.Step(`^I am calling from IP "([^"]*)"$`, steps.callingFromIP)

	// Generic requests
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I POST raw body '([^']*)' to "([^"]*)"$`, steps.postRaw)

	// Assertions
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.fieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should equal number ([-0-9.]+)$`, steps.fieldShouldEqualNumber)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, steps.fieldShouldBeBool)
	ctx.Step(`^the response field "([^"]*)" should be null$`, steps.fieldShouldBeNull)
	ctx.Step(`^the response header "([^"]*)" should equal "([^"]*)"$`, steps.headerShouldEqual)
	ctx.Step(`^the response header "([^"]*)" should be present$`, steps.headerShouldBePresent)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serverIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/healthz", nil); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("server not healthy: status %d: %s", status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) callingFromIP(ctx context.Context, ip string) error {
	s.tc.SetClientIP(ip)
	return nil
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path, nil)
}

func (s *commonSteps) postRaw(ctx context.Context, body, path string) error {
	return s.tc.POSTRaw(path, body)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, expected int) error {
	if actual := s.tc.GetLastResponseStatus(); actual != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, actual, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) fieldShouldEqual(ctx context.Context, field, expected string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if actual := fmt.Sprint(v); actual != expected {
		return fmt.Errorf("expected %s=%q, got %q", field, expected, actual)
	}
	return nil
}

func (s *commonSteps) fieldShouldEqualNumber(ctx context.Context, field, expected string) error {
	want, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return err
	}
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	got, ok := v.(float64)
	if !ok {
		return fmt.Errorf("expected %s to be a number, got %T (%v)", field, v, v)
	}
	if got != want {
		return fmt.Errorf("expected %s=%v, got %v", field, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeBool(ctx context.Context, field, expected string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	got, ok := v.(bool)
	if !ok {
		return fmt.Errorf("expected %s to be a boolean, got %T (%v)", field, v, v)
	}
	if strconv.FormatBool(got) != expected {
		return fmt.Errorf("expected %s=%s, got %t", field, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeNull(ctx context.Context, field string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if v != nil {
		return fmt.Errorf("expected %s to be null, got %v", field, v)
	}
	return nil
}

func (s *commonSteps) headerShouldEqual(ctx context.Context, name, expected string) error {
	if actual := s.tc.GetLastResponseHeader(name); actual != expected {
		return fmt.Errorf("expected header %s=%q, got %q", name, expected, actual)
	}
	return nil
}

func (s *commonSteps) headerShouldBePresent(ctx context.Context, name string) error {
	if s.tc.GetLastResponseHeader(name) == "" {
		return fmt.Errorf("expected header %s to be set", name)
	}
	return nil
}
