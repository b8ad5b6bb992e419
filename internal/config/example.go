package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# weatherdo configuration file
# Values can be overridden by WEATHERDO_* environment variables or CLI flags

# Where tasks and the session are stored (supports ~ and $VAR expansion)
state_file = "~/.weatherdo/state.json"

# State store backend: file or sqlite
store_backend = "file"

# Logging: debug, info, warn, error / text, json, logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

[weather]
# OpenWeatherMap API key. Without one, synthetic readings are used.
# Also read from WEATHER_API_KEY.
api_key = "YOUR_API_KEY"
base_url = "https://api.openweathermap.org/data/2.5"
# Per-lookup timeout in seconds (0 = none)
timeout_seconds = 10

[session]
# Secret used to sign session tokens (random per run when empty)
# secret = ""
# Simulated login latency in milliseconds
login_delay_ms = 800
`
}

// ErrConfigExists is returned by WriteExampleConfig when path already exists.
var ErrConfigExists = errors.New("config file already exists")

// WriteExampleConfig writes ExampleConfig to path, creating parent
// directories. An existing file is only replaced when overwrite is set.
func WriteExampleConfig(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
