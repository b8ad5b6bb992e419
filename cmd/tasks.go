package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/ui"
	"github.com/nibzard/weatherdo/internal/workflow"
)

func (a *app) addCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	priority := fs.String("priority", "", "Task priority (low|medium|high, default medium)")
	location := fs.String("location", "", "Location to attach a weather reading for")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, err := todo.ParsePriority(*priority)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	task, err := a.workflow.CreateTask(ctx, strings.Join(fs.Args(), " "), p, *location)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s\n", task.ShortID())
	printTask(a.out, task, false)
	return a.flush()
}

// lsCommand lists the projected tasks.
func (a *app) lsCommand(args []string) error {
	fs := a.newFlagSet("ls")
	filterName := fs.String("filter", string(todo.DefaultFilter), "Filter (all|active|completed)")
	sortName := fs.String("sort", string(todo.DefaultSortKey), "Sort order (newest|oldest|priority-high|priority-low)")
	verbose := fs.Bool("v", false, "Show more details")
	if _, err := parseArgs(fs, args, "[-filter f] [-sort s] [-v]", 0); err != nil {
		return err
	}
	filter, sortKey, err := parseView(*filterName, *sortName)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	tasks := todo.Project(a.store.Tasks(), filter, sortKey)
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, ui.EmptyListMessage(filter, a.store.Len()))
		return nil
	}
	for _, t := range tasks {
		printTask(a.out, t, *verbose)
	}
	active, completed := a.store.Counts()
	fmt.Fprintf(a.out, "\n%d active, %d completed (filter: %s, sort: %s)\n", active, completed, filter, sortKey.Label())
	return nil
}

func (a *app) toggleCommand(args []string) error {
	rest, err := parseArgs(a.newFlagSet("toggle"), args, "<id>", 1)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	t, err := a.resolveTask(rest[0])
	if err != nil {
		return err
	}

	a.store.ToggleCompleted(t.ID)
	if t.Completed {
		fmt.Fprintf(a.out, "Reopened %s: %s\n", t.ShortID(), t.Text)
	} else {
		fmt.Fprintf(a.out, "Completed %s: %s\n", t.ShortID(), t.Text)
	}
	return a.flush()
}

func (a *app) rmCommand(args []string) error {
	rest, err := parseArgs(a.newFlagSet("rm"), args, "<id>", 1)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	t, err := a.resolveTask(rest[0])
	if err != nil {
		return err
	}

	a.store.Delete(t.ID)
	fmt.Fprintf(a.out, "Deleted %s: %s\n", t.ShortID(), t.Text)
	return a.flush()
}

func (a *app) priorityCommand(args []string) error {
	rest, err := parseArgs(a.newFlagSet("priority"), args, "<id> <low|medium|high>", 2)
	if err != nil {
		return err
	}
	if strings.TrimSpace(rest[1]) == "" {
		return fmt.Errorf("%w: empty priority", todo.ErrInvalidPriority)
	}
	p, err := todo.ParsePriority(rest[1])
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	t, err := a.resolveTask(rest[0])
	if err != nil {
		return err
	}

	a.store.SetPriority(t.ID, p)
	fmt.Fprintf(a.out, "Priority of %s set to %s\n", t.ShortID(), ui.PriorityLabel(p))
	return a.flush()
}

func (a *app) refreshCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("refresh")
	all := fs.Bool("all", false, "Refresh every task that has a location")
	concurrency := fs.Int("concurrency", workflow.DefaultRefreshConcurrency, "Parallel lookups with -all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if (*all && len(rest) != 0) || (!*all && len(rest) != 1) {
		return fmt.Errorf("usage: %s <id> | -all [-concurrency n]", fs.Name())
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	if *all {
		return a.refreshAll(ctx, *concurrency)
	}

	t, err := a.resolveTask(rest[0])
	if err != nil {
		return err
	}
	if !t.HasLocation() {
		fmt.Fprintf(a.out, "Task %s has no location\n", t.ShortID())
		return nil
	}

	updated, err := a.workflow.RefreshWeather(ctx, t.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Weather for %s: %s\n", updated.Location, ui.FormatWeather(updated.Weather))
	return a.flush()
}

func (a *app) refreshAll(ctx context.Context, concurrency int) error {
	results, err := a.workflow.RefreshAll(ctx, concurrency)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.out, "  ❌ %.8s: %v\n", r.TaskID, r.Err)
			continue
		}
		fmt.Fprintf(a.out, "  ✅ %s @%s: %s\n", r.Task.ShortID(), r.Task.Location, ui.FormatWeather(r.Task.Weather))
	}
	fmt.Fprintf(a.out, "Refreshed %d tasks\n", len(results))
	if err != nil {
		return fmt.Errorf("refresh weather: %w", err)
	}
	return a.flush()
}

func (a *app) clearCommand(args []string) error {
	if _, err := parseArgs(a.newFlagSet("clear"), args, "", 0); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	n := a.store.Len()
	a.store.Clear()
	fmt.Fprintf(a.out, "Cleared %d tasks\n", n)
	return a.flush()
}

// exportCommand writes the projected list in a machine-readable format.
func (a *app) exportCommand(args []string) error {
	fs := a.newFlagSet("export")
	format := fs.String("format", "json", "Output format (json|yaml)")
	filterName := fs.String("filter", string(todo.DefaultFilter), "Filter (all|active|completed)")
	sortName := fs.String("sort", string(todo.DefaultSortKey), "Sort order (newest|oldest|priority-high|priority-low)")
	if _, err := parseArgs(fs, args, "[-format json|yaml] [-filter f] [-sort s]", 0); err != nil {
		return err
	}
	filter, sortKey, err := parseView(*filterName, *sortName)
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	tasks := todo.Project(a.store.Tasks(), filter, sortKey)
	switch strings.ToLower(*format) {
	case "json":
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
	case "yaml", "yml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("invalid export format %q, must be json or yaml", *format)
	}
	return nil
}

func parseView(filterName, sortName string) (todo.Filter, todo.SortKey, error) {
	filter, err := todo.ParseFilter(filterName)
	if err != nil {
		return "", "", err
	}
	sortKey, err := todo.ParseSortKey(sortName)
	if err != nil {
		return "", "", err
	}
	return filter, sortKey, nil
}

// printTask prints a single task.
func printTask(w io.Writer, t todo.Task, verbose bool) {
	line := fmt.Sprintf("  %s %s %-6s %s", ui.Checkbox(t.Completed), t.ShortID(), ui.PriorityLabel(t.Priority), t.Text)
	if t.HasLocation() {
		line += "  @" + t.Location
	}
	if t.Weather != nil {
		line += "  " + ui.FormatWeather(t.Weather)
	}
	fmt.Fprintln(w, line)

	if verbose {
		fmt.Fprintf(w, "      ID: %s\n", t.ID)
		fmt.Fprintf(w, "      Created: %s\n", ui.FormatCreated(t.CreatedAt))
		if t.Weather != nil && t.Weather.Icon != "" {
			fmt.Fprintf(w, "      Icon: %s\n", t.Weather.Icon)
		}
	}
}
