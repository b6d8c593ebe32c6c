package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	confirmInput  io.Reader = os.Stdin
	confirmOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the timesheet database with every recorded interval",
	Long: `Remove the SQLite database file named by storage.db_path (or --db).

Every stored interval and shift label is lost. Export the weeks you need first.
The command asks for a capital "Y" before removing anything.`,
	Example: `
  # Remove the configured database
  timesheet delete

  # Remove a scratch database
  timesheet delete --db ./scratch.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath := cfg.Storage.DBPath

		question := fmt.Sprintf("Delete database %q and all recorded intervals?", dbPath)
		confirmed, err := confirmTypedY(confirmInput, confirmOutput, question)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		if err := removeRegularFile("database", dbPath); err != nil {
			return err
		}
		slog.Info("database deleted", "file", dbPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted database file: %s\n", dbPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

// confirmTypedY asks question and reports whether the answer is exactly "Y".
func confirmTypedY(input io.Reader, output io.Writer, question string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("confirmation input is not available")
	}
	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "%s Type Y to confirm: ", question); err != nil {
		return false, fmt.Errorf("write confirmation prompt: %w", err)
	}

	answer, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.TrimSpace(answer) == "Y", nil
}

// removeRegularFile deletes path, refusing directories and missing files.
// what names the file in errors.
func removeRegularFile(what, path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s file not found: %s", what, path)
	}
	if err != nil {
		return fmt.Errorf("stat %s file: %w", what, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s path is a directory: %s", what, path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete %s file: %w", what, err)
	}
	return nil
}
