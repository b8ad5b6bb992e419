// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.weatherdo/weatherdo.toml or OS-specific config directory)
// 3. Project config file (weatherdo.toml or .weatherdo.toml in the working directory)
// 4. Environment variables (WEATHERDO_*, plus WEATHER_API_KEY)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.weatherdo/weatherdo.toml (preferred)
// - Windows: %APPDATA%\weatherdo\weatherdo.toml
// - macOS: ~/Library/Application Support/weatherdo/weatherdo.toml
// - Linux/BSD: $XDG_CONFIG_HOME/weatherdo/weatherdo.toml or ~/.config/weatherdo/weatherdo.toml
//
// Project-level config locations (overrides user config):
// - ./weatherdo.toml (preferred)
// - ./.weatherdo.toml
package config
