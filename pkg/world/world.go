// Package world owns the per-scenario browser lifecycle: one browser
// process, one isolated browser context and one page per scenario, opened
// before the first step runs and released after the last one, with a
// full-page screenshot attached to the report when the scenario failed.
package world

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/e2ekit/browserdog/internal/config"
	"github.com/e2ekit/browserdog/internal/logging"
)

// World is the shared scenario context. Exactly one instance exists per
// scenario and it is never shared across concurrently running scenarios.
type World struct {
	cfg      config.Config
	log      logging.Logger
	scenario string

	pw      *playwright.Playwright
	browser playwright.Browser
	session playwright.BrowserContext
	page    playwright.Page
}

// New returns an empty world. Handles are populated by Setup.
func New(log logging.Logger) *World {
	return &World{log: log}
}

// Setup launches the configured browser engine, opens an isolated browser
// context and a page, and stores all three on the world. Any failure
// unwinds whatever was already created and aborts the scenario; there is no
// retry at this level.
func (w *World) Setup(cfg config.Config, scenario string) error {
	if w.pw != nil {
		return errors.New("world already set up for this scenario")
	}
	w.cfg = cfg
	w.scenario = scenario

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("failed to start playwright driver (run `browserdog install` first): %w", err)
	}

	engine, err := engineFor(pw, cfg.Browser)
	if err != nil {
		_ = pw.Stop()
		return err
	}

	browser, err := engine.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(cfg.SlowMo),
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	session, err := browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(cfg.BaseURL),
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := session.NewPage()
	if err != nil {
		_ = session.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(cfg.Timeout.Milliseconds()))

	w.pw = pw
	w.browser = browser
	w.session = session
	w.page = page
	return nil
}

// Teardown runs after every scenario, whether or not setup succeeded. When
// the scenario failed and a page is still live, it captures a full-page
// screenshot and attaches it to the report before releasing anything. It
// then releases page, context, browser and driver in that order, each
// guarded so one failure never blocks the next. Teardown never returns an
// error: the scenario's fate was decided by its steps.
func (w *World) Teardown(ctx context.Context, scenarioErr error) context.Context {
	if isFailure(scenarioErr) && w.page != nil {
		ctx = attachScreenshot(ctx, w.log, artifactName(w.scenario), w.cfg.ArtifactsDir, func() ([]byte, error) {
			return w.page.Screenshot(playwright.PageScreenshotOptions{
				FullPage: playwright.Bool(true),
				Type:     playwright.ScreenshotTypePng,
			})
		})
	}

	releaseEach(w.log, []release{
		{"page", func() error {
			if w.page == nil {
				return nil
			}
			err := w.page.Close()
			w.page = nil
			return err
		}},
		{"browser context", func() error {
			if w.session == nil {
				return nil
			}
			err := w.session.Close()
			w.session = nil
			return err
		}},
		{"browser", func() error {
			if w.browser == nil {
				return nil
			}
			err := w.browser.Close()
			w.browser = nil
			return err
		}},
		{"playwright driver", func() error {
			if w.pw == nil {
				return nil
			}
			err := w.pw.Stop()
			w.pw = nil
			return err
		}},
	})
	return ctx
}

// Config returns the configuration this scenario was set up with.
func (w *World) Config() config.Config {
	return w.cfg
}

// Page returns the scenario's page handle.
func (w *World) Page() (playwright.Page, error) {
	if w.page == nil {
		return nil, errors.New("no page available: the scenario is not set up or was already torn down")
	}
	return w.page, nil
}

// Session returns the scenario's isolated browser context.
func (w *World) Session() (playwright.BrowserContext, error) {
	if w.session == nil {
		return nil, errors.New("no browser context available: the scenario is not set up or was already torn down")
	}
	return w.session, nil
}

// Browser returns the scenario's browser process handle.
func (w *World) Browser() (playwright.Browser, error) {
	if w.browser == nil {
		return nil, errors.New("no browser available: the scenario is not set up or was already torn down")
	}
	return w.browser, nil
}

// isFailure reports whether the scenario actually failed. godog's After
// hook also passes a non-nil error for undefined and pending scenarios;
// those statuses get no failure evidence.
func isFailure(scenarioErr error) bool {
	if scenarioErr == nil {
		return false
	}
	if errors.Is(scenarioErr, godog.ErrUndefined) || errors.Is(scenarioErr, godog.ErrPending) {
		return false
	}
	return true
}

func engineFor(pw *playwright.Playwright, browser string) (playwright.BrowserType, error) {
	switch browser {
	case "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("invalid browser: %s (must be one of: %s)", browser, strings.Join(config.Browsers, ", "))
	}
}

// attachScreenshot captures failure evidence and attaches it to the
// scenario's report record. Capture failures are logged and swallowed so
// they never mask the original scenario failure.
func attachScreenshot(ctx context.Context, log logging.Logger, name, dir string, capture func() ([]byte, error)) context.Context {
	image, err := capture()
	if err != nil {
		log.Warnf("failed to capture failure screenshot: %v", err)
		return ctx
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Warnf("failed to create artifacts directory %s: %v", dir, err)
		} else if err := os.WriteFile(filepath.Join(dir, name), image, 0644); err != nil {
			log.Warnf("failed to write screenshot %s: %v", name, err)
		}
	}

	return godog.Attach(ctx, godog.Attachment{
		Body:      image,
		FileName:  name,
		MediaType: "image/png",
	})
}

type release struct {
	name  string
	close func() error
}

// releaseEach attempts every release in order. A failure releasing one
// resource is logged and must not prevent attempting the next.
func releaseEach(log logging.Logger, releases []release) {
	for _, r := range releases {
		if err := r.close(); err != nil {
			log.Warnf("failed to release %s: %v", r.name, err)
		}
	}
}

// artifactName builds a filesystem-safe screenshot name from the scenario
// name, suffixed so repeated failures of the same scenario never collide.
func artifactName(scenario string) string {
	name := strings.ToLower(strings.TrimSpace(scenario))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, name)
	name = strings.Trim(name, "-")
	if name == "" {
		name = "scenario"
	}
	return fmt.Sprintf("%s_%s.png", name, uuid.NewString()[:8])
}
