package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nibzard/weatherdo/internal/storage"
	"github.com/nibzard/weatherdo/internal/ui"
)

// tuiLogFile receives log output while the TUI owns the terminal.
const tuiLogFile = "weatherdo.log"

func (a *app) tuiCommand(ctx context.Context, args []string) error {
	if _, err := parseArgs(a.newFlagSet("tui"), args, "", 0); err != nil {
		return err
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	if err := a.open(); err != nil {
		return err
	}

	restore, err := a.redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	if err := ui.RunTUI(ctx, ui.Deps{
		Store:    a.store,
		Workflow: a.workflow,
		Sessions: a.sessions,
		Logger:   a.logger,
	}); err != nil {
		return err
	}
	return a.flush()
}

// redirectLogs sends log output to a file next to the state file. The
// returned func restores stderr logging.
func (a *app) redirectLogs() (func(), error) {
	backend, _ := a.cfg.Backend()
	if backend == storage.BackendMemory {
		a.logger.SetOutput(io.Discard)
		return func() { a.logger.SetOutput(a.errOut) }, nil
	}

	path := filepath.Join(filepath.Dir(a.cfg.StateFile), tuiLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	a.logger.SetOutput(f)
	return func() {
		a.logger.SetOutput(a.errOut)
		f.Close()
	}, nil
}
