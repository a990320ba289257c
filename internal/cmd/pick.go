package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/e2ekit/browserdog/pkg/tui"
)

var pickRoot string

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick feature files and run them",
	RunE: func(cmd *cobra.Command, args []string) error {
		features, err := tui.DiscoverFeatures(pickRoot)
		if err != nil {
			return err
		}
		if len(features) == 0 {
			return fmt.Errorf("no .feature files found under %s", pickRoot)
		}

		program := tea.NewProgram(tui.NewModel(features))
		final, err := program.Run()
		if err != nil {
			return fmt.Errorf("picker failed: %w", err)
		}

		model, ok := final.(tui.Model)
		if !ok {
			return fmt.Errorf("unexpected picker model type %T", final)
		}
		paths, headed, aborted := model.Selection()
		if aborted {
			return nil
		}

		if headed {
			os.Setenv("HEADLESS", "false")
		}
		return runSuite(paths)
	},
}

func init() {
	pickCmd.Flags().StringVar(&pickRoot, "features", "features", "directory to search for .feature files")
	rootCmd.AddCommand(pickCmd)
}
