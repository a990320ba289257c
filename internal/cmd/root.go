package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/e2ekit/browserdog/internal/logging"
)

var (
	version = "0.1.0"

	logLevel  string
	logFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "browserdog",
	Short: "Browser end-to-end testing boilerplate wiring godog to Playwright",
	Long: `browserdog wires the godog BDD runner to the Playwright browser driver:

• Gherkin feature files with ready-made browser step definitions
• A per-scenario world carrying browser, context and page handles
• Hooks that open a browser before each scenario and close it after
• A full-page screenshot attached to the report when a scenario fails
• Environment-driven configuration (BROWSER, HEADLESS, BASE_URL, TEST_ENV)
• Optional environments.toml profiles for named environments
• Interactive feature picker with Bubble Tea UI`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel == "" && logFormat == "" {
			return nil
		}
		return logging.Configure(logLevel, logFormat)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR); defaults to LOG_LEVEL or INFO")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text or json); defaults to LOG_FORMAT or text")
}
