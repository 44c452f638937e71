package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	GetLastResponseStatus() int
	GetResponseField(field string) (interface{}, error)
}

// RegisterSteps registers generic request and assertion step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response message should contain "([^"]*)"$`, steps.messageShouldContain)
	ctx.Step(`^the response detail should contain "([^"]*)"$`, steps.detailShouldContain)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, expected int) error {
	if got := s.tc.GetLastResponseStatus(); got != expected {
		return fmt.Errorf("expected status %d, got %d", expected, got)
	}
	return nil
}

func (s *commonSteps) messageShouldContain(ctx context.Context, substring string) error {
	return s.fieldShouldContain("message", substring)
}

func (s *commonSteps) detailShouldContain(ctx context.Context, substring string) error {
	return s.fieldShouldContain("detail", substring)
}

func (s *commonSteps) fieldShouldContain(field, substring string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("field %q is not a string: %v", field, value)
	}
	if !strings.Contains(text, substring) {
		return fmt.Errorf("expected %q to contain %q", text, substring)
	}
	return nil
}
