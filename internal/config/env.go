package config

import (
	"os"
	"strconv"
	"strings"
)

// envBinding maps one environment variable onto a config field.
type envBinding struct {
	name  string
	field string
	apply func(cfg *Config, value string) bool
}

// envBindings are applied in order, so later entries win for the same field.
var envBindings = []envBinding{
	{"WEATHERDO_STATE_FILE", "state_file", func(c *Config, v string) bool { c.StateFile = v; return true }},
	{"WEATHERDO_STORE_BACKEND", "store_backend", func(c *Config, v string) bool { c.StoreBackend = v; return true }},
	{"WEATHER_API_KEY", "weather.api_key", func(c *Config, v string) bool { c.Weather.APIKey = v; return true }},
	{"WEATHERDO_WEATHER_API_KEY", "weather.api_key", func(c *Config, v string) bool { c.Weather.APIKey = v; return true }},
	{"WEATHERDO_WEATHER_BASE_URL", "weather.base_url", func(c *Config, v string) bool { c.Weather.BaseURL = v; return true }},
	{"WEATHERDO_WEATHER_TIMEOUT", "weather.timeout_seconds", func(c *Config, v string) bool { return setInt(&c.Weather.TimeoutSeconds, v) }},
	{"WEATHERDO_SESSION_SECRET", "session.secret", func(c *Config, v string) bool { c.Session.Secret = v; return true }},
	{"WEATHERDO_LOGIN_DELAY_MS", "session.login_delay_ms", func(c *Config, v string) bool { return setInt(&c.Session.LoginDelayMs, v) }},
	{"WEATHERDO_LOG_LEVEL", "log_level", func(c *Config, v string) bool { c.LogLevel = v; return true }},
	{"WEATHERDO_LOG_FORMAT", "log_format", func(c *Config, v string) bool { c.LogFormat = v; return true }},
	{"WEATHERDO_LOG_TIMESTAMPS", "log_timestamps", func(c *Config, v string) bool { c.LogTimestamps = boolFromString(v); return true }},
	{"WEATHERDO_LOG_CALLER", "log_caller", func(c *Config, v string) bool { c.LogCaller = boolFromString(v); return true }},
}

// loadFromEnv overrides config from environment variables and updates
// source tracking. Malformed numbers are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	for _, b := range envBindings {
		v := os.Getenv(b.name)
		if v == "" {
			continue
		}
		if b.apply(cfg, v) && sources != nil {
			sources[b.field] = SourceEnv
		}
	}
}

func setInt(dst *int, v string) bool {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	*dst = i
	return true
}

// boolFromString accepts the usual spellings of true; anything else is false.
func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
