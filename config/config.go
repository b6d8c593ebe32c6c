package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyDBPath       = "storage.db_path"
	KeyExportDir    = "export.dir"
	KeyExportFormat = "export.format"
	KeyLogLevel     = "log.level"
	KeyServePort    = "serve.port"
)

const (
	DefaultDBPath       = "./timesheet.db"
	DefaultExportFormat = "pdf"
	DefaultLogLevel     = "info"
	DefaultServePort    = 8080
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Export  ExportConfig  `mapstructure:"export"`
	Log     LogConfig     `mapstructure:"log"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path" validate:"required"`
}

type ExportConfig struct {
	// Dir is where weekly reports are written; empty means the home directory.
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format" validate:"required,oneof=pdf excel xlsx csv"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn warning error"`
}

type ServeConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# timesheet configuration
storage:
  db_path: "./timesheet.db"

export:
  # Directory for weekly reports; empty writes to the home directory.
  dir: ""
  # pdf | excel (xlsx) | csv
  format: "pdf"

log:
  # debug | info | warn (warning) | error
  level: "info"

serve:
  port: 8080
`
}

// ResolveExportDir returns the configured export directory, falling back to
// the user's home directory.
func (c Config) ResolveExportDir() (string, error) {
	if dir := strings.TrimSpace(c.Export.Dir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home, nil
}

// ParseLogLevel maps a configured level name to slog; unknown names fall back
// to info.
func ParseLogLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Export.Format = strings.ToLower(strings.TrimSpace(cfg.Export.Format))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDBPath, DefaultDBPath)
	v.SetDefault(KeyExportDir, "")
	v.SetDefault(KeyExportFormat, DefaultExportFormat)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyServePort, DefaultServePort)
}
