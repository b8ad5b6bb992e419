package cmd

import (
	"fmt"
	"os"

	"github.com/nibzard/weatherdo/internal/config"
	"github.com/nibzard/weatherdo/internal/logging"
	"github.com/nibzard/weatherdo/internal/storage"
	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/weather"
)

// doctorCommand checks the configuration and the persisted state without
// loading it into a task store, so a damaged state can still be inspected.
func (a *app) doctorCommand(args []string) error {
	fs := a.newFlagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")
	if _, err := parseArgs(fs, args, "[-v]", 0); err != nil {
		return err
	}
	w := a.out
	cfg := a.cfg

	fmt.Fprintln(w, "weatherdo doctor")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(w, "  ✅ Files: none (using defaults)")
	}
	for _, f := range a.cws.Files {
		fmt.Fprintf(w, "  ✅ File: %s\n", f)
	}
	for _, warning := range a.cws.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if logging.ValidLevel(cfg.LogLevel) {
		fmt.Fprintf(w, "  ✅ Log level: %s\n", cfg.LogLevel)
	} else {
		fmt.Fprintf(w, "  ❌ Log level: %s (expected debug|info|warn|error)\n", cfg.LogLevel)
		allOK = false
	}
	if logging.ValidFormat(cfg.LogFormat) {
		fmt.Fprintf(w, "  ✅ Log format: %s\n", cfg.LogFormat)
	} else {
		fmt.Fprintf(w, "  ❌ Log format: %s (expected text|json|logfmt)\n", cfg.LogFormat)
		allOK = false
	}
	backend, err := cfg.Backend()
	if err != nil {
		fmt.Fprintf(w, "  ❌ Store backend: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "  ✅ Store backend: %s\n", backend)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Weather:")
	if weather.HasCredential(cfg.Weather.APIKey) {
		fmt.Fprintf(w, "  ✅ API key: %s\n", config.MaskSecret(cfg.Weather.APIKey))
	} else {
		fmt.Fprintln(w, "  ⚠️  API key: not set (synthetic readings will be used)")
	}
	fmt.Fprintf(w, "  ✅ Endpoint: %s\n", cfg.Weather.BaseURL)
	if cfg.Weather.TimeoutSeconds == 0 {
		fmt.Fprintln(w, "  ⚠️  Timeout: none (lookups may hang)")
	} else {
		fmt.Fprintf(w, "  ✅ Timeout: %s\n", cfg.WeatherTimeout())
	}
	fmt.Fprintln(w)

	if err == nil && !a.checkState(backend, *verbose) {
		allOK = false
	}

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. weatherdo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func (a *app) checkState(backend storage.Backend, verbose bool) bool {
	w := a.out
	path := a.cfg.StateFile
	if backend == storage.BackendMemory {
		fmt.Fprintln(w, "State: in memory")
		fmt.Fprintln(w, "  ⚠️  Nothing is persisted between runs")
		fmt.Fprintln(w)
		return true
	}

	fmt.Fprintf(w, "State file: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on first change)")
		fmt.Fprintln(w)
		return true
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		fmt.Fprintln(w)
		return false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		fmt.Fprintln(w)
		return false
	}

	state, err := storage.OpenState(backend, path)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Open error: %v\n", err)
		fmt.Fprintln(w)
		return false
	}
	defer state.Close()
	fmt.Fprintln(w, "  ✅ OK")

	ok := true
	if authenticated, err := state.LoadFlag(storage.KeyAuthenticated); err != nil {
		fmt.Fprintf(w, "  ❌ Session: %v\n", err)
		ok = false
	} else if authenticated {
		fmt.Fprintln(w, "  ✅ Session: signed in")
	} else {
		fmt.Fprintln(w, "  ⚠️  Session: not signed in")
	}

	raw, found, err := state.Raw(storage.KeyTodos)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Tasks: %v\n", err)
		ok = false
	case !found:
		fmt.Fprintln(w, "  ✅ Tasks: none saved yet")
	default:
		result := todo.ValidateState([]byte(raw), todo.ValidationOptions{})
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s\n", warning)
		}
		if result.Valid {
			fmt.Fprintf(w, "  ✅ Tasks: %d valid\n", result.Tasks)
		} else {
			fmt.Fprintln(w, "  ❌ Tasks: validation failed:")
			for _, e := range result.Errors {
				fmt.Fprintf(w, "     - %v\n", e)
			}
			ok = false
		}
		if verbose {
			fmt.Fprintf(w, "  Schema validation: %t\n", result.UsedSchema)
		}
	}
	fmt.Fprintln(w)
	return ok
}
