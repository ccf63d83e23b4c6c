// Package config assembles runtime settings for the TaskBuddy CLI.
// Values are applied in three stages: defaults, then a JSON file (if one
// was given via -c/-config), then command-line flags. Later stages win.
package config

// Config holds runtime settings for the TaskBuddy CLI.
type Config struct {
	// DatabasePath is the path of the sqlite file backing local storage.
	DatabasePath string
	// LogLevel controls diagnostic output: debug, info, warn or error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "taskbuddy.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
