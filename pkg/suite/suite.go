// Package suite wires the godog runner to the browser world: a fresh world
// per scenario, setup before the first step, teardown (with failure
// screenshot) after the last one. Both `go test` entrypoints and the CLI
// runner share this wiring.
package suite

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/e2ekit/browserdog/internal/config"
	"github.com/e2ekit/browserdog/internal/logging"
	"github.com/e2ekit/browserdog/pkg/steps"
	"github.com/e2ekit/browserdog/pkg/world"
)

// InitializeScenario is invoked by godog for every scenario. Each scenario
// gets its own world, so concurrently running scenarios never observe each
// other's browser, context or page.
func InitializeScenario(sc *godog.ScenarioContext) {
	log := logging.Default()
	w := world.New(log)

	sc.Before(func(ctx context.Context, sn *godog.Scenario) (context.Context, error) {
		cfg, err := config.Load()
		if err != nil {
			return ctx, fmt.Errorf("failed to load configuration: %w", err)
		}
		log.Debugf("scenario %q: launching %s (headless=%t, base URL %s)", sn.Name, cfg.Browser, cfg.Headless, cfg.BaseURL)
		if err := w.Setup(cfg, sn.Name); err != nil {
			return ctx, err
		}
		return ctx, nil
	})

	// Runs unconditionally, including after a failed setup; the world
	// nil-guards every handle so partial setups still get cleaned up.
	sc.After(func(ctx context.Context, sn *godog.Scenario, scenarioErr error) (context.Context, error) {
		ctx = w.Teardown(ctx, scenarioErr)
		return ctx, nil
	})

	steps.Register(sc, w)
}

// Run executes the suite with the given options and returns the godog exit
// status. Used by the CLI runner; `go test` callers build their own
// godog.TestSuite so they can pass TestingT.
func Run(opts godog.Options) int {
	return (godog.TestSuite{
		Name:                "browserdog",
		ScenarioInitializer: InitializeScenario,
		Options:             &opts,
	}).Run()
}
