package cmd

import (
	"fmt"
	"os"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/spf13/cobra"

	"github.com/e2ekit/browserdog/pkg/suite"
)

var (
	runFormat  string
	runTags    string
	runHeaded  bool
	runBrowser string
	runBaseURL string
	runStrict  bool
)

var runCmd = &cobra.Command{
	Use:   "run [feature paths...]",
	Short: "Run the feature suite outside of `go test`",
	Long: `Runs the godog suite directly, which is handy in CI images where the
Go test cache is unavailable. Feature paths default to ./features.

Flags override the corresponding environment variables for this run only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runHeaded {
			os.Setenv("HEADLESS", "false")
		}
		if runBrowser != "" {
			os.Setenv("BROWSER", runBrowser)
		}
		if runBaseURL != "" {
			os.Setenv("BASE_URL", runBaseURL)
		}

		paths := args
		if len(paths) == 0 {
			paths = []string{"features"}
		}

		return runSuite(paths)
	},
}

func runSuite(paths []string) error {
	status := suite.Run(godog.Options{
		Output: colors.Colored(os.Stdout),
		Format: runFormat,
		Paths:  paths,
		Tags:   runTags,
		Strict: runStrict,
	})
	if status != 0 {
		return fmt.Errorf("feature suite failed with status %d", status)
	}
	return nil
}

func init() {
	runCmd.Flags().StringVar(&runFormat, "format", "pretty", "godog output format (pretty, progress, cucumber, junit)")
	runCmd.Flags().StringVar(&runTags, "tags", "~@app", "tag expression selecting scenarios to run")
	runCmd.Flags().BoolVar(&runHeaded, "headed", false, "run with a visible browser window")
	runCmd.Flags().StringVar(&runBrowser, "browser", "", "browser engine (chromium, firefox, webkit)")
	runCmd.Flags().StringVar(&runBaseURL, "base-url", "", "base URL the features run against")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "fail the suite on pending or undefined steps")
	rootCmd.AddCommand(runCmd)
}
