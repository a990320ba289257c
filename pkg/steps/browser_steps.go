// Package steps provides the browser step definitions the example features
// are written against. Projects using the boilerplate are expected to add
// their own step files alongside this one.
package steps

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
	"github.com/playwright-community/playwright-go"

	"github.com/e2ekit/browserdog/pkg/world"
)

// BrowserSteps binds generic page-interaction steps to the scenario world.
type BrowserSteps struct {
	world *world.World
}

// Register wires the browser steps into the scenario context.
func Register(sc *godog.ScenarioContext, w *world.World) {
	s := &BrowserSteps{world: w}

	sc.Step(`^I navigate to the home page$`, s.navigateHome)
	sc.Step(`^I navigate to "([^"]*)"$`, s.navigateTo)
	sc.Step(`^I wait for the page to finish loading$`, s.waitForLoad)

	sc.Step(`^I fill "([^"]*)" with "([^"]*)"$`, s.fillField)
	sc.Step(`^I click "([^"]*)"$`, s.clickSelector)
	sc.Step(`^I click the "([^"]*)" link$`, s.clickLink)
	sc.Step(`^I click the "([^"]*)" button$`, s.clickButton)

	sc.Step(`^the page title should be "([^"]*)"$`, s.titleShouldBe)
	sc.Step(`^the page title should contain "([^"]*)"$`, s.titleShouldContain)
	sc.Step(`^I should see "([^"]*)"$`, s.shouldSeeText)
	sc.Step(`^I should not see "([^"]*)"$`, s.shouldNotSeeText)
	sc.Step(`^the current path should be "([^"]*)"$`, s.currentPathShouldBe)
}

func (s *BrowserSteps) navigateHome() error {
	return s.navigateTo("/")
}

// navigateTo accepts an absolute URL or a path relative to the configured
// base URL; relative paths are resolved by the browser context's BaseURL.
func (s *BrowserSteps) navigateTo(target string) error {
	page, err := s.world.Page()
	if err != nil {
		return err
	}
	if _, err := page.Goto(target); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	return nil
}

func (s *BrowserSteps) waitForLoad() error {
	page, err := s.world.Page()
	if err != nil {
		return err
	}
	return page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateLoad,
	})
}

func (s *BrowserSteps) fillField(selector, value string) error {
	page, err := s.world.Page()
	if err != nil {
		return err
	}
	if err := page.Locator(selector).Fill(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

func (s *BrowserSteps) clickSelector(selector string) error {
	page, err := s.world.Page()
	if err != nil {
		return err
	}
	if err := page.Locator(selector).Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

func (s *BrowserSteps) clickLink(name string) error {
	return s.clickRole(*playwright.AriaRoleLink, name)
}

func (s *BrowserSteps) clickButton(name string) error {
	return s.clickRole(*playwright.AriaRoleButton, name)
}

func (s *BrowserSteps) clickRole(role playwright.AriaRole, name string) error {
	page, err := s.world.Page()
	if err != nil {
		return err
	}
	locator := page.GetByRole(role, playwright.PageGetByRoleOptions{Name: name})
	if err := locator.Click(); err != nil {
		return fmt.Errorf("failed to click %s %q: %w", role, name, err)
	}
	return nil
}

func (s *BrowserSteps) titleShouldBe(expected string) error {
	title, err := s.pageTitle()
	if err != nil {
		return err
	}
	if title != expected {
		return fmt.Errorf("expected page title %q, got %q", expected, title)
	}
	return nil
}

func (s *BrowserSteps) titleShouldContain(expected string) error {
	title, err := s.pageTitle()
	if err != nil {
		return err
	}
	if !strings.Contains(title, expected) {
		return fmt.Errorf("expected page title to contain %q, got %q", expected, title)
	}
	return nil
}

func (s *BrowserSteps) pageTitle() (string, error) {
	page, err := s.world.Page()
	if err != nil {
		return "", err
	}
	title, err := page.Title()
	if err != nil {
		return "", fmt.Errorf("failed to read page title: %w", err)
	}
	return title, nil
}

func (s *BrowserSteps) shouldSeeText(expected string) error {
	text, err := s.bodyText()
	if err != nil {
		return err
	}
	if !strings.Contains(text, expected) {
		return fmt.Errorf("expected page to contain %q", expected)
	}
	return nil
}

func (s *BrowserSteps) shouldNotSeeText(unexpected string) error {
	text, err := s.bodyText()
	if err != nil {
		return err
	}
	if strings.Contains(text, unexpected) {
		return fmt.Errorf("expected page to not contain %q, but it does", unexpected)
	}
	return nil
}

func (s *BrowserSteps) bodyText() (string, error) {
	page, err := s.world.Page()
	if err != nil {
		return "", err
	}
	text, err := page.Locator("body").InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read page text: %w", err)
	}
	return text, nil
}

func (s *BrowserSteps) currentPathShouldBe(expected string) error {
	page, err := s.world.Page()
	if err != nil {
		return err
	}
	current, err := url.Parse(page.URL())
	if err != nil {
		return fmt.Errorf("failed to parse current URL %q: %w", page.URL(), err)
	}
	if current.Path != expected {
		return fmt.Errorf("expected current path %q, got %q", expected, current.Path)
	}
	return nil
}
