package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nibzard/weatherdo/internal/config"
)

// configCommand prints the effective configuration and the source of each value.
func (a *app) configCommand(args []string) error {
	if _, err := parseArgs(a.newFlagSet("config"), args, "", 0); err != nil {
		return err
	}
	w := a.out

	fmt.Fprintln(w, "Config files:")
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, f := range a.cws.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Effective configuration:")
	for _, e := range a.cws.Entries() {
		fmt.Fprintf(w, "  %-24s = %-40q (%s)\n", e.Field, e.Value, e.Source)
	}

	if len(a.cws.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range a.cws.Warnings {
			fmt.Fprintf(w, "  %s\n", warning)
		}
	}
	return nil
}

// initCommand writes an example config file.
func (a *app) initCommand(args []string) error {
	fs := a.newFlagSet("init")
	user := fs.Bool("user", false, "Write the user config file instead of ./weatherdo.toml")
	force := fs.Bool("force", false, "Overwrite an existing file")
	if _, err := parseArgs(fs, args, "[-user] [-force]", 0); err != nil {
		return err
	}

	path := "weatherdo.toml"
	if *user {
		path = config.UserConfigPath()
		if path == "" {
			return errors.New("cannot determine user config directory")
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if err := config.WriteExampleConfig(path, *force); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use -force to overwrite)", err)
		}
		return err
	}
	fmt.Fprintf(a.out, "Created %s\n", path)
	return nil
}
