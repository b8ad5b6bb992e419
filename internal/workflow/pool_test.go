package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/weather"
)

// gaugeResolver records the peak number of concurrent lookups.
type gaugeResolver struct {
	mu      sync.Mutex
	active  int
	peak    int
	calls   int
	holdFor time.Duration
}

func (r *gaugeResolver) Resolve(_ context.Context, location string) weather.Resolution {
	r.mu.Lock()
	r.active++
	r.calls++
	if r.active > r.peak {
		r.peak = r.active
	}
	r.mu.Unlock()

	time.Sleep(r.holdFor)

	r.mu.Lock()
	r.active--
	r.mu.Unlock()
	return weather.Resolution{Reading: weather.Reading{Condition: "Sunny", Temperature: 20}, Source: weather.SourceLive}
}

func seedTasks(store *todo.Store, locations ...string) {
	for i, loc := range locations {
		store.Add(todo.Task{
			ID:        string(rune('a' + i)),
			Text:      "task",
			Priority:  todo.PriorityMedium,
			CreatedAt: created.Add(time.Duration(i) * time.Minute),
			Location:  loc,
		})
	}
}

func TestRefreshAll(t *testing.T) {
	res := &gaugeResolver{holdFor: 10 * time.Millisecond}
	store, err := todo.NewStore(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	seedTasks(store, "Oslo", "", "Rome", "Lima", "Pune", "Kyiv")
	w := New(store, res)

	results, err := w.RefreshAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}

	wantIDs := []string{"a", "c", "d", "e", "f"}
	if len(results) != len(wantIDs) {
		t.Fatalf("got %d results, want %d", len(results), len(wantIDs))
	}
	for i, r := range results {
		if r.TaskID != wantIDs[i] {
			t.Errorf("results[%d].TaskID = %q, want %q", i, r.TaskID, wantIDs[i])
		}
		if r.Err != nil || r.Task.Weather == nil {
			t.Errorf("results[%d] = %+v", i, r)
		}
	}
	if res.peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", res.peak)
	}
	if res.calls != len(wantIDs) {
		t.Errorf("resolver calls = %d, want %d", res.calls, len(wantIDs))
	}
	if got, _ := store.Get("b"); got.Weather != nil {
		t.Error("task without location got weather")
	}
}

func TestRefreshAllCancelled(t *testing.T) {
	res := &gaugeResolver{}
	store, err := todo.NewStore(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	seedTasks(store, "Oslo", "Rome")
	w := New(store, res)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := w.RefreshAll(ctx, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %s err = %v", r.TaskID, r.Err)
		}
	}
	if res.calls != 0 {
		t.Errorf("resolver called %d times after cancel", res.calls)
	}
}

func TestRefreshAllEmpty(t *testing.T) {
	store, err := todo.NewStore(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	results, err := New(store, &gaugeResolver{}).RefreshAll(context.Background(), 3)
	if err != nil || len(results) != 0 {
		t.Errorf("RefreshAll() = %v, %v", results, err)
	}
}
