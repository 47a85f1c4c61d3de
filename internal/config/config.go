package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"

	"github.com/csheth/scicalc/internal/eval"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SCICALC_"

// Config holds all runtime settings for the calculator
type Config struct {
	// Evaluation
	AngleMode eval.AngleUnit `env:"ANGLE_MODE" envDefault:"radians"`
	Precision int            `env:"PRECISION" envDefault:"10"`

	// Logging; the terminal belongs to the TUI, so logs only go to a file
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:""`

	// Presentation
	AltScreen bool `env:"ALT_SCREEN" envDefault:"true"`
}

// Load loads configuration from the process environment
func Load() (*Config, error) {
	return load(env.Options{Prefix: Prefix})
}

// LoadFrom loads configuration from the given variables instead of the
// process environment. Keys carry the SCICALC_ prefix.
func LoadFrom(vars map[string]string) (*Config, error) {
	return load(env.Options{Prefix: Prefix, Environment: vars})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Precision < 1 || c.Precision > 17 {
		return fmt.Errorf("%sPRECISION must be between 1 and 17", Prefix)
	}
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("%sLOG_LEVEL must be one of: debug, info, warn, error", Prefix)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{AngleMode=%s, Precision=%d, LogLevel=%s, LogFile=%q, AltScreen=%v}",
		c.AngleMode,
		c.Precision,
		c.LogLevel,
		c.LogFile,
		c.AltScreen,
	)
}
