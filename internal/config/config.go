// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and MARQUEE_* environment variables on top.
// - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: console or json.
	LogFormat string `koanf:"log_format"`

	// LogFile, when set, also writes logs to a file rotated by size and age.
	LogFile       string `koanf:"log_file"`
	LogMaxSizeMB  int    `koanf:"log_max_size_mb"`
	LogMaxBackups int    `koanf:"log_max_backups"`
	LogMaxAgeDays int    `koanf:"log_max_age_days"`

	// Addr configures the HTTP listen address, e.g. ":4000".
	Addr string `koanf:"addr"`

	// GraphiQL serves the interactive console at /graphiql.
	GraphiQL bool `koanf:"graphiql"`

	// SeedCatalog loads the startup movies when the service starts.
	SeedCatalog bool `koanf:"seed_catalog"`

	// RandomSeed seeds the random source. 0 picks a crypto seed.
	RandomSeed int64 `koanf:"random_seed"`

	// MaxDiceRolls caps the rolls argument of a dice request. 0 disables the cap.
	MaxDiceRolls int `koanf:"max_dice_rolls"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "console",
		LogMaxSizeMB:  100,
		LogMaxBackups: 3,
		LogMaxAgeDays: 28,
		Addr:          ":4000",
		GraphiQL:      true,
		SeedCatalog:   true,
		MaxDiceRolls:  10_000,
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.LogFormat != "console" && c.LogFormat != "json":
		return invalid("log_format must be console or json")
	case c.MaxDiceRolls < 0:
		return invalid("max_dice_rolls must not be negative")
	case c.LogFile != "" && c.LogMaxSizeMB <= 0:
		return invalid("log_max_size_mb must be positive")
	}
	return nil
}
