package config

import (
	"time"

	"github.com/nibzard/weatherdo/internal/storage"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Warnings reports keys in config files that were not recognized.
	Warnings []string
}

// Default values.
const (
	DefaultStateFile      = "~/.weatherdo/state.json"
	DefaultSQLiteFile     = "~/.weatherdo/state.db"
	DefaultStoreBackend   = string(storage.BackendFile)
	DefaultWeatherTimeout = 10
	DefaultLoginDelayMs   = 800
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config is the effective weatherdo configuration.
type Config struct {
	// StateFile is where tasks and the session are persisted.
	StateFile    string `toml:"state_file"`
	StoreBackend string `toml:"store_backend"`

	Weather WeatherConfig `toml:"weather"`
	Session SessionConfig `toml:"session"`

	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// WeatherConfig configures live weather lookups.
type WeatherConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	// TimeoutSeconds bounds each lookup. Zero means no timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// SessionConfig configures the mock sign-in.
type SessionConfig struct {
	// Secret signs session tokens. A random per-process secret is used when empty.
	Secret       string `toml:"secret"`
	LoginDelayMs int    `toml:"login_delay_ms"`
}

// WeatherTimeout returns the lookup timeout as a duration.
func (c *Config) WeatherTimeout() time.Duration {
	if c.Weather.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Weather.TimeoutSeconds) * time.Second
}

// LoginDelay returns the simulated login latency.
func (c *Config) LoginDelay() time.Duration {
	if c.Session.LoginDelayMs <= 0 {
		return 0
	}
	return time.Duration(c.Session.LoginDelayMs) * time.Millisecond
}

// Backend returns the parsed store backend.
func (c *Config) Backend() (storage.Backend, error) {
	return storage.ParseBackend(c.StoreBackend)
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"state_file",
		"store_backend",
		"weather.api_key",
		"weather.base_url",
		"weather.timeout_seconds",
		"session.secret",
		"session.login_delay_ms",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StateFile = DefaultStateFile
	cfg.StoreBackend = DefaultStoreBackend
	cfg.Weather = WeatherConfig{TimeoutSeconds: DefaultWeatherTimeout}
	cfg.Session = SessionConfig{LoginDelayMs: DefaultLoginDelayMs}
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
