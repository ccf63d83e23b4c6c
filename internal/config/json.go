package config

import (
	"encoding/json"
	"os"

	"github.com/taskbuddy/taskbuddy/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config fields untouched.
type jsonConfig struct {
	DatabasePath *string `json:"database_path"`
	LogLevel     *string `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag. When no file was given, nothing happens. Read or
// unmarshal errors panic; config problems should stop startup.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}
	if err := overlayJSONFile(cfg, path); err != nil {
		panic(err)
	}
}

func overlayJSONFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
