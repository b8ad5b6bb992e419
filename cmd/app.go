package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/weatherdo/internal/config"
	"github.com/nibzard/weatherdo/internal/logging"
	"github.com/nibzard/weatherdo/internal/session"
	"github.com/nibzard/weatherdo/internal/storage"
	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/weather"
	"github.com/nibzard/weatherdo/internal/workflow"
)

var errNotLoggedIn = errors.New("not logged in (run: weatherdo login -u <username>)")

// app carries the loaded configuration and, once opened, the wired components.
type app struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *log.Logger

	state    *storage.State
	sessions *session.Manager
	store    *todo.Store
	resolver *weather.Resolver
	workflow *workflow.Workflow
}

func newApp(cws *config.ConfigWithSources, in io.Reader, out, errOut io.Writer) *app {
	cfg := cws.Config
	logger := logging.NewFromConfig(errOut, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	for _, w := range cws.Warnings {
		logger.Warn(w)
	}
	return &app{cws: cws, cfg: cfg, in: in, out: out, errOut: errOut, logger: logger}
}

// open wires the state store, session, task store and workflow.
func (a *app) open() error {
	if a.state != nil {
		return nil
	}
	backend, err := a.cfg.Backend()
	if err != nil {
		return err
	}
	state, err := storage.OpenState(backend, a.cfg.StateFile)
	if err != nil {
		return fmt.Errorf("open state %s: %w", a.cfg.StateFile, err)
	}

	sessions, err := session.Open(state, session.Options{
		Secret: []byte(a.cfg.Session.Secret),
		Delay:  a.cfg.LoginDelay(),
		Logger: a.logger,
	})
	if err != nil {
		state.Close()
		return err
	}
	store, err := todo.NewStore(state, a.logger)
	if err != nil {
		state.Close()
		return err
	}

	a.resolver = weather.NewResolverFromKey(a.cfg.Weather.APIKey, a.logger,
		weather.WithBaseURL(a.cfg.Weather.BaseURL),
		weather.WithTimeout(a.cfg.WeatherTimeout()),
	)
	a.state = state
	a.sessions = sessions
	a.store = store
	a.workflow = workflow.New(store, a.resolver, workflow.WithLogger(a.logger))
	a.logger.Debug("state opened", "backend", backend, "path", a.cfg.StateFile, "live_weather", a.resolver.Live())
	return nil
}

// requireSession opens the state and fails unless a user is signed in.
func (a *app) requireSession() error {
	if err := a.open(); err != nil {
		return err
	}
	if !a.sessions.Current().Authenticated {
		return errNotLoggedIn
	}
	return nil
}

// flush writes the task collection and reports any persistence failure that
// the store only logged.
func (a *app) flush() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *app) close() error {
	if a.state == nil {
		return nil
	}
	err := a.state.Close()
	a.state = nil
	return err
}

// resolveTask maps an id or unique id prefix to a stored task.
func (a *app) resolveTask(ref string) (todo.Task, error) {
	id, err := a.store.Resolve(ref)
	if err != nil {
		return todo.Task{}, err
	}
	t, ok := a.store.Get(id)
	if !ok {
		return todo.Task{}, fmt.Errorf("%w: %q", todo.ErrNotFound, ref)
	}
	return t, nil
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("weatherdo "+name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parseArgs parses a subcommand's flags and checks the positional count.
func parseArgs(fs *flag.FlagSet, args []string, usage string, n int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) != n {
		return nil, fmt.Errorf("usage: %s %s", fs.Name(), usage)
	}
	return rest, nil
}
