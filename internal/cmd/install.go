package cmd

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/spf13/cobra"

	"github.com/e2ekit/browserdog/internal/config"
)

var installVerbose bool

var installCmd = &cobra.Command{
	Use:   "install [browser...]",
	Short: "Download the Playwright driver and browser engines",
	Long: `Downloads the Playwright driver plus the named browser engines
(chromium, firefox, webkit). With no arguments only the default engine is
installed. Run this once before the first suite run, or in your CI image.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		browsers := args
		if len(browsers) == 0 {
			browsers = []string{config.DefaultBrowser}
		}
		for _, browser := range browsers {
			if !validBrowser(browser) {
				return fmt.Errorf("invalid browser: %s (must be one of: %s)", browser, strings.Join(config.Browsers, ", "))
			}
		}

		return playwright.Install(&playwright.RunOptions{
			Browsers: browsers,
			Verbose:  installVerbose,
		})
	},
}

func validBrowser(name string) bool {
	for _, browser := range config.Browsers {
		if name == browser {
			return true
		}
	}
	return false
}

func init() {
	installCmd.Flags().BoolVar(&installVerbose, "verbose", false, "show driver download output")
	rootCmd.AddCommand(installCmd)
}
