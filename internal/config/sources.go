package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

const (
	appDirName     = ".weatherdo"
	configDirName  = "weatherdo"
	configFileName = "weatherdo.toml"
)

// projectConfigNames are checked in the working directory, in order.
var projectConfigNames = []string{configFileName, "." + configFileName}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.weatherdo/weatherdo.toml first, then the OS-specific config directory.
func findUserConfigFile() string {
	for _, path := range userConfigCandidates() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func userConfigCandidates() []string {
	var out []string
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, appDirName, configFileName))
	}
	if dir := osUserConfigDir(); dir != "" {
		out = append(out, filepath.Join(dir, configDirName, configFileName))
	}
	return out
}

// UserConfigPath returns the preferred location of the user config file.
func UserConfigPath() string {
	candidates := userConfigCandidates()
	if len(candidates) == 0 {
		return configFileName
	}
	return candidates[0]
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// Entry is one effective configuration value.
type Entry struct {
	Field  string
	Value  string
	Source ConfigSource
}

// Entries returns every configurable field in display order. Secrets are masked.
func (cws *ConfigWithSources) Entries() []Entry {
	cfg := cws.Config
	values := map[string]string{
		"state_file":              cfg.StateFile,
		"store_backend":           cfg.StoreBackend,
		"weather.api_key":         MaskSecret(cfg.Weather.APIKey),
		"weather.base_url":        cfg.Weather.BaseURL,
		"weather.timeout_seconds": strconv.Itoa(cfg.Weather.TimeoutSeconds),
		"session.secret":          MaskSecret(cfg.Session.Secret),
		"session.login_delay_ms":  strconv.Itoa(cfg.Session.LoginDelayMs),
		"log_level":               cfg.LogLevel,
		"log_format":              cfg.LogFormat,
		"log_timestamps":          strconv.FormatBool(cfg.LogTimestamps),
		"log_caller":              strconv.FormatBool(cfg.LogCaller),
	}

	fields := configFields()
	out := make([]Entry, 0, len(fields))
	for _, f := range fields {
		src, ok := cws.Sources[f]
		if !ok {
			src = SourceDefault
		}
		out = append(out, Entry{Field: f, Value: values[f], Source: src})
	}
	return out
}

// MaskSecret hides all but the last four characters of s.
func MaskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 4:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}
