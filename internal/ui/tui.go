// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/weatherdo/internal/session"
	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/workflow"
)

// Deps are the components the TUI drives.
type Deps struct {
	Store    *todo.Store
	Workflow *workflow.Workflow
	Sessions *session.Manager
	Logger   *log.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Store == nil:
		return errors.New("tui: store is required")
	case d.Workflow == nil:
		return errors.New("tui: workflow is required")
	case d.Sessions == nil:
		return errors.New("tui: session manager is required")
	}
	return nil
}

// RunTUI starts the TUI and blocks until the user quits or ctx is cancelled.
func RunTUI(ctx context.Context, deps Deps) error {
	if err := deps.validate(); err != nil {
		return err
	}
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(newModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
