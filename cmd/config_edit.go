package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"timesheet/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the timesheet config and validate it.",
	Long: `Open the active timesheet config in $VISUAL, then $EDITOR, then vi.

A missing file is created from the example first. When the editor exits the
file is validated: export.format must be pdf, excel, xlsx or csv, log.level
one of debug, info, warn, warning, error, and serve.port a valid port.`,
	Example: `
  # Edit the active config
  timesheet config edit

  # Edit with a one-off editor
  VISUAL="code --wait" timesheet config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := activeConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		written, err := writeExampleConfig(path)
		if err != nil {
			return err
		}
		if written {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote example config before editing: %s\n", path)
		}

		editor, err := editorCommand(pickEditor(os.Getenv("VISUAL"), os.Getenv("EDITOR")), path)
		if err != nil {
			return err
		}
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}

		return reportEditedConfig(cmd.OutOrStdout(), path)
	},
}

// reportEditedConfig validates the file at path and prints the values that
// matter for the next run.
func reportEditedConfig(out io.Writer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read edited config: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return fmt.Errorf("config %s is invalid: %w", path, err)
	}

	fmt.Fprintf(out, "Config valid: %s (database %s, export format %s)\n", path, cfg.Storage.DBPath, cfg.Export.Format)
	return nil
}

// activeConfigPath picks --configFile, then the loaded file, then
// $HOME/.timesheet.yaml.
func activeConfigPath(flagPath, loadedPath string) (string, error) {
	for _, candidate := range []string{flagPath, loadedPath} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".timesheet.yaml"), nil
}

// writeExampleConfig writes the example config to path unless a file is
// already there. It reports whether it wrote one.
func writeExampleConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("write example config: %w", err)
	}
	return true, nil
}

func pickEditor(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}

func editorCommand(editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return exec.Command(fields[0], append(fields[1:], path)...), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
