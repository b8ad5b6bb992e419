// Package workflow creates tasks and refreshes their weather.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/weatherdo/internal/logging"
	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/weather"
)

// WeatherResolver resolves a reading for a location. It never fails.
type WeatherResolver interface {
	Resolve(ctx context.Context, location string) weather.Resolution
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		if now != nil {
			w.now = now
		}
	}
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(newID func() string) Option {
	return func(w *Workflow) {
		if newID != nil {
			w.newID = newID
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Workflow) {
		w.logger = logging.OrDiscard(logger)
	}
}

// Workflow ties the task store to weather resolution.
type Workflow struct {
	store    *todo.Store
	resolver WeatherResolver
	now      func() time.Time
	newID    func() string
	logger   *log.Logger
}

// New creates a workflow over store. A nil resolver resolves synthetically.
func New(store *todo.Store, resolver WeatherResolver, opts ...Option) *Workflow {
	w := &Workflow{
		store:    store,
		resolver: resolver,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.resolver == nil {
		w.resolver = weather.NewResolver(nil, nil, w.logger)
	}
	return w
}

// CreateTask validates the input, resolves weather when a location is given,
// and adds the new task to the store. Invalid input never reaches the store
// or the weather provider.
func (w *Workflow) CreateTask(ctx context.Context, text string, priority todo.Priority, location string) (todo.Task, error) {
	trimmed, err := todo.ValidateText(text)
	if err != nil {
		return todo.Task{}, err
	}
	if priority == "" {
		priority = todo.DefaultPriority
	}
	if !priority.Valid() {
		return todo.Task{}, &todo.ValidationError{Path: "priority", Err: fmt.Errorf("%w %q", todo.ErrInvalidPriority, priority)}
	}

	task := todo.Task{
		ID:        w.newID(),
		Text:      trimmed,
		Priority:  priority,
		CreatedAt: w.now().UTC(),
		Location:  strings.TrimSpace(location),
	}
	if task.HasLocation() {
		res := w.resolver.Resolve(ctx, task.Location)
		reading := res.Reading
		task.Weather = &reading
		w.logger.Debug("weather resolved", "task_id", task.ID, "location", task.Location, "source", res.Source)
	}

	w.store.Add(task)
	w.logger.Info("task created", "task_id", task.ID, "priority", task.Priority)
	return task, nil
}

// RefreshWeather re-resolves the weather of the task with id. A task without
// a location is returned unchanged.
func (w *Workflow) RefreshWeather(ctx context.Context, id string) (todo.Task, error) {
	task, ok := w.store.Get(id)
	if !ok {
		return todo.Task{}, fmt.Errorf("refresh weather %q: %w", id, todo.ErrNotFound)
	}
	if !task.HasLocation() {
		return task, nil
	}

	res := w.resolver.Resolve(ctx, task.Location)
	reading := res.Reading
	updated, ok := w.store.SetWeather(id, &reading)
	if !ok {
		return todo.Task{}, fmt.Errorf("refresh weather %q: %w", id, todo.ErrNotFound)
	}
	w.logger.Debug("weather refreshed", "task_id", id, "location", task.Location, "source", res.Source)
	return updated, nil
}

// DefaultRefreshConcurrency bounds RefreshAll when no limit is given.
const DefaultRefreshConcurrency = 4

// RefreshAll refreshes every task that has a location, running at most
// concurrency lookups at once. Results follow collection order. The returned
// error joins the per-task failures.
func (w *Workflow) RefreshAll(ctx context.Context, concurrency int) ([]RefreshResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultRefreshConcurrency
	}

	var ids []string
	for _, t := range w.store.Tasks() {
		if t.HasLocation() {
			ids = append(ids, t.ID)
		}
	}

	pool := newRefreshPool(ctx, concurrency, len(ids))
	for i, id := range ids {
		pool.submit(i, id, func(ctx context.Context) (todo.Task, error) {
			return w.RefreshWeather(ctx, id)
		})
	}
	results := pool.wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	w.logger.Info("bulk weather refresh finished", "tasks", len(results), "failed", len(errs))
	return results, errors.Join(errs...)
}
