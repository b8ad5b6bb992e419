package config

import "flag"

// flagBinding maps a parsed flag onto a config field.
type flagBinding struct {
	field string
	apply func()
}

// parseFlags defines the global flags on fs, parses args, and applies only
// the flags that were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("weatherdo", flag.ContinueOnError)
	}

	stateFile := fs.String("state", cfg.StateFile, "Path to the state file")
	backend := fs.String("backend", cfg.StoreBackend, "State store backend (file, sqlite, memory)")
	apiKey := fs.String("api-key", "", "OpenWeatherMap API key")
	baseURL := fs.String("weather-url", cfg.Weather.BaseURL, "Weather API base URL")
	timeout := fs.Int("weather-timeout", cfg.Weather.TimeoutSeconds, "Weather lookup timeout in seconds (0 = none)")
	loginDelay := fs.Int("login-delay", cfg.Session.LoginDelayMs, "Simulated login delay in milliseconds")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	logTimestamps := fs.Bool("log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	logCaller := fs.Bool("log-caller", cfg.LogCaller, "Show caller location in logs")

	bindings := map[string]flagBinding{
		"state":           {"state_file", func() { cfg.StateFile = *stateFile }},
		"backend":         {"store_backend", func() { cfg.StoreBackend = *backend }},
		"api-key":         {"weather.api_key", func() { cfg.Weather.APIKey = *apiKey }},
		"weather-url":     {"weather.base_url", func() { cfg.Weather.BaseURL = *baseURL }},
		"weather-timeout": {"weather.timeout_seconds", func() { cfg.Weather.TimeoutSeconds = *timeout }},
		"login-delay":     {"session.login_delay_ms", func() { cfg.Session.LoginDelayMs = *loginDelay }},
		"log-level":       {"log_level", func() { cfg.LogLevel = *logLevel }},
		"log-format":      {"log_format", func() { cfg.LogFormat = *logFormat }},
		"log-timestamps":  {"log_timestamps", func() { cfg.LogTimestamps = *logTimestamps }},
		"log-caller":      {"log_caller", func() { cfg.LogCaller = *logCaller }},
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		b, ok := bindings[f.Name]
		if !ok {
			return
		}
		b.apply()
		if sources != nil {
			sources[b.field] = SourceFlag
		}
	})
	return nil
}
