package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/example/purchase-analyzer/internal/textenc"
)

// EnvPrefix is prepended to every environment override, e.g. PURCHASES_INPUT_FILE
const EnvPrefix = "PURCHASES"

// Config represents the application configuration
type Config struct {
	InputFile  string `mapstructure:"input_file"`
	OutputFile string `mapstructure:"output_file"`
	TopN       int    `mapstructure:"top_n"`    // purchases shown on the console
	Encoding   string `mapstructure:"encoding"` // charset of the input file
	LogLevel   string `mapstructure:"log_level"`
}

// Override adjusts a loaded config before it is validated, e.g. with
// command-line flags
type Override func(*Config)

// LoadConfig loads configuration from file and environment variables, applies
// overrides in order and validates the result.
// An empty configPath skips the file and uses defaults plus environment.
func LoadConfig(configPath string, overrides ...Override) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	// Set defaults
	v.SetDefault("input_file", "purchases.txt")
	v.SetDefault("output_file", "report.txt")
	v.SetDefault("top_n", 3)
	v.SetDefault("encoding", "utf-8")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for _, override := range overrides {
		override(&config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values that cannot be caught by unmarshalling
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputFile) == "" {
		return fmt.Errorf("input_file must not be empty")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	}
	if _, err := textenc.Lookup(c.Encoding); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}
