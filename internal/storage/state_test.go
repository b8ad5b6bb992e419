package storage

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/weather"
)

func sampleTasks() []todo.Task {
	created := time.Date(2024, 5, 17, 14, 30, 15, 123456789, time.UTC)
	return []todo.Task{
		{ID: "b7c1", Text: "Water plants", Priority: todo.PriorityLow, CreatedAt: created},
		{
			ID: "a2f9", Text: "Picnic", Completed: true, Priority: todo.PriorityHigh,
			CreatedAt: created.Add(time.Hour), Location: "Lisbon",
			Weather: &weather.Reading{Temperature: 22.5, Condition: "Sunny", Icon: weather.IconURL("01d")},
		},
		{ID: "0c3e", Text: "Call mom", Priority: todo.PriorityMedium, CreatedAt: created.Add(-time.Hour)},
	}
}

func TestStateTodosRoundTrip(t *testing.T) {
	dir := t.TempDir()
	backends := map[Backend]string{
		BackendFile:   filepath.Join(dir, "state.json"),
		BackendSQLite: filepath.Join(dir, "state.db"),
	}

	for backend, path := range backends {
		t.Run(string(backend), func(t *testing.T) {
			st, err := OpenState(backend, path)
			if err != nil {
				t.Fatalf("OpenState() error = %v", err)
			}
			want := sampleTasks()
			if err := st.SaveTodos(want); err != nil {
				t.Fatalf("SaveTodos() error = %v", err)
			}
			st.Close()

			reopened, err := OpenState(backend, path)
			if err != nil {
				t.Fatal(err)
			}
			defer reopened.Close()
			got, err := reopened.LoadTodos()
			if err != nil {
				t.Fatalf("LoadTodos() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
			}
		})
	}
}

func TestStateLoadTodosAbsent(t *testing.T) {
	st := NewState(NewMemory())
	tasks, err := st.LoadTodos()
	if err != nil {
		t.Fatal(err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("LoadTodos() = %#v, want empty non-nil slice", tasks)
	}
}

func TestStateSaveNilTodos(t *testing.T) {
	st := NewState(NewMemory())
	if err := st.SaveTodos(nil); err != nil {
		t.Fatal(err)
	}
	if raw, _, _ := st.Raw(KeyTodos); raw != "[]" {
		t.Errorf("Raw(todos) = %q, want []", raw)
	}
}

func TestStateFlags(t *testing.T) {
	st := NewState(NewMemory())

	if v, err := st.LoadFlag(KeyAuthenticated); v || err != nil {
		t.Errorf("absent flag = %v, %v; want false", v, err)
	}
	if err := st.SaveFlag(KeyAuthenticated, true); err != nil {
		t.Fatal(err)
	}
	if raw, _, _ := st.Raw(KeyAuthenticated); raw != "true" {
		t.Errorf("Raw() = %q, want \"true\"", raw)
	}
	if v, _ := st.LoadFlag(KeyAuthenticated); !v {
		t.Error("LoadFlag() = false after saving true")
	}
	st.SaveFlag(KeyAuthenticated, false)
	if raw, _, _ := st.Raw(KeyAuthenticated); raw != "false" {
		t.Errorf("Raw() = %q, want \"false\"", raw)
	}
}

func TestStateJSON(t *testing.T) {
	st := NewState(NewMemory())
	type user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}

	var u user
	if ok, err := st.LoadJSON(KeyUser, &u); ok || err != nil {
		t.Fatalf("LoadJSON(absent) = %v, %v", ok, err)
	}
	if err := st.SaveJSON(KeyUser, user{ID: "1", Username: "bob"}); err != nil {
		t.Fatal(err)
	}
	if ok, err := st.LoadJSON(KeyUser, &u); !ok || err != nil || u.Username != "bob" {
		t.Fatalf("LoadJSON() = %v, %v, %+v", ok, err, u)
	}
	if err := st.Remove(KeyUser); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := st.Raw(KeyUser); ok {
		t.Error("user still present after Remove")
	}

	st.kv.Set(KeyUser, "{broken")
	if _, err := st.LoadJSON(KeyUser, &u); err == nil {
		t.Error("expected decode error")
	}
}

func TestStateBacksTodoStore(t *testing.T) {
	st := NewState(NewMemory())
	store, err := todo.NewStore(st, nil)
	if err != nil {
		t.Fatal(err)
	}
	store.Add(todo.Task{ID: "x", Text: "persist me", Priority: todo.PriorityMedium})

	tasks, err := st.LoadTodos()
	if err != nil || len(tasks) != 1 || tasks[0].ID != "x" {
		t.Errorf("persisted tasks = %+v, %v", tasks, err)
	}
}
