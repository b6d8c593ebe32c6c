package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"timesheet/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Values coming
from defaults, environment variables or flags are shown even without a file.`,
	Example: `
  # Show active configuration
  timesheet config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded; using defaults and environment.")
		}

		exportDir := cfg.Export.Dir
		if exportDir == "" {
			exportDir = "(home directory)"
		}

		fmt.Println("Configuration:")
		fmt.Printf("%s: %s\n", config.KeyDBPath, cfg.Storage.DBPath)
		fmt.Printf("%s: %s\n", config.KeyExportDir, exportDir)
		fmt.Printf("%s: %s\n", config.KeyExportFormat, cfg.Export.Format)
		fmt.Printf("%s: %s\n", config.KeyLogLevel, cfg.Log.Level)
		fmt.Printf("%s: %d\n", config.KeyServePort, cfg.Serve.Port)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
