package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Defaults applied when the corresponding environment variable is unset.
// An unset HEADLESS means headless; set HEADLESS=false to watch the browser.
const (
	DefaultBrowser      = "chromium"
	DefaultBaseURL      = "https://example.com"
	DefaultEnvironment  = "local"
	DefaultTimeout      = 30 * time.Second
	DefaultArtifactsDir = "test-results"
)

// Browsers lists the engines a scenario may request via BROWSER.
var Browsers = []string{"chromium", "firefox", "webkit"}

// Config carries everything scenario setup needs. It is resolved once per
// scenario so step logic never reads the environment directly.
type Config struct {
	Browser      string
	Headless     bool
	BaseURL      string
	Environment  string
	Timeout      time.Duration
	SlowMo       float64
	ArtifactsDir string
}

// Profile is one named environment in an environments.toml file.
type Profile struct {
	BaseURL  string `toml:"base_url"`
	Headless *bool  `toml:"headless"`
}

type profileFile struct {
	Environments map[string]Profile `toml:"environments"`
}

var envBindings = map[string]string{
	"browser":       "BROWSER",
	"headless":      "HEADLESS",
	"base_url":      "BASE_URL",
	"environment":   "TEST_ENV",
	"timeout":       "E2E_TIMEOUT",
	"slow_mo":       "SLOW_MO",
	"artifacts_dir": "ARTIFACTS_DIR",
}

// Load resolves the suite configuration from the process environment, then
// overlays the active environment profile for any value the environment did
// not set explicitly. Explicit environment variables always win.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("browser", DefaultBrowser)
	v.SetDefault("headless", true)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("environment", DefaultEnvironment)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("slow_mo", float64(0))
	v.SetDefault("artifacts_dir", DefaultArtifactsDir)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	cfg := Config{
		Browser:      strings.ToLower(strings.TrimSpace(v.GetString("browser"))),
		Headless:     v.GetBool("headless"),
		BaseURL:      v.GetString("base_url"),
		Environment:  v.GetString("environment"),
		Timeout:      v.GetDuration("timeout"),
		SlowMo:       v.GetFloat64("slow_mo"),
		ArtifactsDir: v.GetString("artifacts_dir"),
	}

	if profile, ok := lookupProfile(cfg.Environment); ok {
		if profile.BaseURL != "" && !v.IsSet("base_url") {
			cfg.BaseURL = profile.BaseURL
		}
		if profile.Headless != nil && !v.IsSet("headless") {
			cfg.Headless = *profile.Headless
		}
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// lookupProfile finds the named environment in ENVIRONMENTS_FILE or one of
// the conventional file locations. A missing file is not an error; the
// profile mechanism is entirely optional.
func lookupProfile(environment string) (Profile, bool) {
	path := os.Getenv("ENVIRONMENTS_FILE")
	if path == "" {
		for _, candidate := range []string{"environments.toml", ".environments.toml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return Profile{}, false
	}

	var file profileFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Profile{}, false
	}
	profile, ok := file.Environments[environment]
	return profile, ok
}

func validate(cfg Config) error {
	valid := false
	for _, browser := range Browsers {
		if cfg.Browser == browser {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid browser: %s (must be one of: %s)", cfg.Browser, strings.Join(Browsers, ", "))
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s (must be positive)", cfg.Timeout)
	}
	if cfg.SlowMo < 0 {
		return fmt.Errorf("invalid slow_mo: %v (must not be negative)", cfg.SlowMo)
	}
	return nil
}
