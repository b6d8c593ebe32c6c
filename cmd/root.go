/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"timesheet/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Clock in and out, classify shifts, and export weekly timesheets.",
	Long: `
**********************************************
*               TIMESHEET                    *
**********************************************

This CLI records work intervals in a local SQLite database. Every interval is
classified into the shift it overlaps most:
- O (Overday): 06:00-14:00
- M (Mid):     14:00-22:00
- N (Night):   22:00-06:00

Weekly timesheets (Monday to Sunday) can be exported as PDF, Excel or CSV.
`,
	Example: `
  # Create configuration file
  timesheet config create

  # Clock in and out interactively
  timesheet track

  # Serve the clock in the browser
  timesheet serve --port 8080

  # Show the current week in the terminal
  timesheet week

  # Export the week containing a date
  timesheet export --date 2024-03-06 --format pdf

  # Export raw intervals
  timesheet export --mode raw --output ./intervals.csv
`,
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
	cobra.OnInitialize(initConfig, initLogging)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.timesheet.yaml, then ./.timesheet.yaml)")
	rootCmd.PersistentFlags().String("db", config.DefaultDBPath, "Path to SQLite database file")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")

	cobra.CheckErr(viper.BindPFlag(config.KeyDBPath, rootCmd.PersistentFlags().Lookup("db")))
	cobra.CheckErr(viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".timesheet" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".timesheet")
	}

	viper.SetEnvPrefix("TIMESHEET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// A missing file is fine: defaults, env and flags still apply.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Config file could not be read:", err)
		}
	}
}

func initLogging() {
	level := config.ParseLogLevel(viper.GetString(config.KeyLogLevel))
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// loadConfig returns the validated configuration for commands that need it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
