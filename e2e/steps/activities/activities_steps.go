package activities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string) error
	DELETE(path string) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers registry-specific step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &activitySteps{tc: tc}

	ctx.Step(`^I request the activity catalog$`, steps.requestCatalog)
	ctx.Step(`^the catalog should contain the activity "([^"]*)"$`, steps.catalogShouldContain)

	ctx.Step(`^I sign up "([^"]*)" for "([^"]*)"$`, steps.signUp)
	ctx.Step(`^"([^"]*)" is signed up for "([^"]*)"$`, steps.ensureSignedUp)
	ctx.Step(`^I unregister "([^"]*)" from "([^"]*)"$`, steps.unregister)

	ctx.Step(`^the roster for "([^"]*)" should include "([^"]*)"$`, steps.rosterShouldInclude)
	ctx.Step(`^the roster for "([^"]*)" should not include "([^"]*)"$`, steps.rosterShouldNotInclude)
}

type activitySteps struct {
	tc TestContext
}

func (s *activitySteps) requestCatalog(ctx context.Context) error {
	return s.tc.GET("/activities")
}

func (s *activitySteps) catalogShouldContain(ctx context.Context, activity string) error {
	catalog, err := s.fetchCatalog()
	if err != nil {
		return err
	}
	if _, ok := catalog[activity]; !ok {
		return fmt.Errorf("activity %q not present in catalog", activity)
	}
	return nil
}

func (s *activitySteps) signUp(ctx context.Context, email, activity string) error {
	return s.tc.POST(signupPath(activity, email))
}

// ensureSignedUp puts the student on the roster as scenario setup. An
// already-registered rejection is fine: the precondition already holds.
func (s *activitySteps) ensureSignedUp(ctx context.Context, email, activity string) error {
	if err := s.tc.POST(signupPath(activity, email)); err != nil {
		return err
	}
	switch s.tc.GetLastResponseStatus() {
	case 200, 400:
		return nil
	default:
		return fmt.Errorf("could not sign up %s for %s: status %d, body %s",
			email, activity, s.tc.GetLastResponseStatus(), s.tc.GetLastResponseBody())
	}
}

func (s *activitySteps) unregister(ctx context.Context, email, activity string) error {
	return s.tc.DELETE(fmt.Sprintf("/activities/%s/unregister?email=%s",
		url.PathEscape(activity), url.QueryEscape(email)))
}

func (s *activitySteps) rosterShouldInclude(ctx context.Context, activity, email string) error {
	roster, err := s.fetchRoster(activity)
	if err != nil {
		return err
	}
	for _, participant := range roster {
		if participant == email {
			return nil
		}
	}
	return fmt.Errorf("%s not on the roster for %s: %v", email, activity, roster)
}

func (s *activitySteps) rosterShouldNotInclude(ctx context.Context, activity, email string) error {
	roster, err := s.fetchRoster(activity)
	if err != nil {
		return err
	}
	for _, participant := range roster {
		if participant == email {
			return fmt.Errorf("%s still on the roster for %s", email, activity)
		}
	}
	return nil
}

type activityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func (s *activitySteps) fetchCatalog() (map[string]activityView, error) {
	if err := s.tc.GET("/activities"); err != nil {
		return nil, err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return nil, fmt.Errorf("fetching catalog returned status %d", status)
	}

	var catalog map[string]activityView
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, nil
}

func (s *activitySteps) fetchRoster(activity string) ([]string, error) {
	catalog, err := s.fetchCatalog()
	if err != nil {
		return nil, err
	}
	a, ok := catalog[activity]
	if !ok {
		return nil, fmt.Errorf("activity %q not present in catalog", activity)
	}
	return a.Participants, nil
}

func signupPath(activity, email string) string {
	return fmt.Sprintf("/activities/%s/signup?email=%s",
		url.PathEscape(activity), url.QueryEscape(email))
}
