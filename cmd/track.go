package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"timesheet/internal/tracker"
	"timesheet/session"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Clock in and out interactively",
	Long: `Open the interactive clock in the terminal.

Keys:
- i: clock in (ignored while a session is open)
- o: clock out and store the interval with its shift
- q: quit (asks again while a session is open; the open session is not stored)

The running time is tinted with the colour of the shift it currently falls into.`,
	Example: `
  # Start the clock
  timesheet track
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !stdinIsTerminal() {
			return fmt.Errorf("track needs an interactive terminal")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		controller := session.NewController(store, session.WithLogger(slog.Default()))
		program := tea.NewProgram(tracker.New(controller), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("run tracker: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
