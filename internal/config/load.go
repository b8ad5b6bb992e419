package config

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/weatherdo/internal/storage"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.weatherdo/weatherdo.toml or OS-specific config dir)
// 3. Project config file (weatherdo.toml or .weatherdo.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// Project config overrides user config
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg, cws.Sources)

	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg, cws.Sources); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes a TOML file over cfg. Only keys present in the file
// change values, and those keys are attributed to source.
func loadConfigFile(cws *ConfigWithSources, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	cws.Files = append(cws.Files, path)

	for _, field := range configFields() {
		if md.IsDefined(strings.Split(field, ".")...) {
			cws.Sources[field] = source
		}
	}
	for _, key := range md.Undecoded() {
		cws.Warnings = append(cws.Warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	return nil
}

// finalizeConfig computes derived values and validates enumerations.
func finalizeConfig(cfg *Config, sources map[string]ConfigSource) error {
	backend, err := storage.ParseBackend(cfg.StoreBackend)
	if err != nil {
		return err
	}
	cfg.StoreBackend = string(backend)

	// A sqlite backend without an explicit path gets its own default file
	if backend == storage.BackendSQLite && sources["state_file"] == SourceDefault {
		cfg.StateFile = DefaultSQLiteFile
	}

	// Expand ~ in paths
	cfg.StateFile = expandPath(cfg.StateFile)
	if backend != storage.BackendMemory && !filepath.IsAbs(cfg.StateFile) {
		abs, err := filepath.Abs(cfg.StateFile)
		if err != nil {
			return fmt.Errorf("resolving state file: %w", err)
		}
		cfg.StateFile = abs
	}

	cfg.Weather.APIKey = strings.TrimSpace(cfg.Weather.APIKey)
	cfg.Weather.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Weather.BaseURL), "/")
	if cfg.Weather.TimeoutSeconds < 0 {
		return fmt.Errorf("weather.timeout_seconds must be >= 0, got %d", cfg.Weather.TimeoutSeconds)
	}
	if cfg.Session.LoginDelayMs < 0 {
		return fmt.Errorf("session.login_delay_ms must be >= 0, got %d", cfg.Session.LoginDelayMs)
	}
	return nil
}
