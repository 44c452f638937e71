package e2e

import (
	"github.com/cucumber/godog"

	"mergington/e2e/steps/activities"
	"mergington/e2e/steps/common"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register registry-specific steps
	activities.RegisterSteps(ctx, tc)
}
