package todo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validState = `[
  {"id":"a","text":"Walk","completed":false,"priority":"high","createdAt":"2024-03-01T09:00:00Z"},
  {"id":"b","text":"Shop","completed":true,"priority":"low","createdAt":"2024-03-01T10:00:00Z","location":"Oslo",
   "weather":{"temperature":4,"condition":"Snowy","icon":"https://openweathermap.org/img/wn/01d@2x.png"}}
]`

func TestValidateStateWithSchema(t *testing.T) {
	t.Run("valid state", func(t *testing.T) {
		result := ValidateState([]byte(validState), ValidationOptions{})
		if !result.Valid {
			t.Fatalf("expected valid, got errors: %v", result.Errors)
		}
		if !result.UsedSchema {
			t.Error("expected embedded schema to be used")
		}
		if result.Tasks != 2 {
			t.Errorf("Tasks = %d, want 2", result.Tasks)
		}
	})

	tests := []struct {
		name     string
		state    string
		wantPath string
	}{
		{"bad priority", `[{"id":"a","text":"x","completed":false,"priority":"urgent","createdAt":"2024-03-01T09:00:00Z"}]`, "[0].priority"},
		{"blank text", `[{"id":"a","text":"   ","completed":false,"priority":"low","createdAt":"2024-03-01T09:00:00Z"}]`, "[0].text"},
		{"bad timestamp", `[{"id":"a","text":"x","completed":false,"priority":"low","createdAt":"yesterday"}]`, "[0].createdAt"},
		{"weather missing icon", `[{"id":"a","text":"x","completed":false,"priority":"low","createdAt":"2024-03-01T09:00:00Z","weather":{"temperature":1,"condition":"Sunny"}}]`, "[0].weather"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateState([]byte(tt.state), ValidationOptions{})
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			if !containsPath(result.Errors, tt.wantPath) {
				t.Errorf("expected an error at %s, got %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestValidateStateMinimal(t *testing.T) {
	t.Run("valid state", func(t *testing.T) {
		result := ValidateState([]byte(validState), ValidationOptions{SkipSchema: true})
		if !result.Valid || result.UsedSchema {
			t.Fatalf("Valid=%v UsedSchema=%v errors=%v", result.Valid, result.UsedSchema, result.Errors)
		}
	})

	tests := []struct {
		name     string
		state    string
		wantPath string
	}{
		{"not an array", `{"todos":[]}`, ""},
		{"missing id", `[{"text":"x","completed":false,"priority":"low","createdAt":"2024-03-01T09:00:00Z"}]`, "[0].id"},
		{"blank text", `[{"id":"a","text":" ","completed":false,"priority":"low","createdAt":"2024-03-01T09:00:00Z"}]`, "[0].text"},
		{"bad priority", `[{"id":"a","text":"x","completed":false,"priority":"p1","createdAt":"2024-03-01T09:00:00Z"}]`, "[0].priority"},
		{"bad completed", `[{"id":"a","text":"x","completed":"no","priority":"low","createdAt":"2024-03-01T09:00:00Z"}]`, "[0].completed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateState([]byte(tt.state), ValidationOptions{SkipSchema: true})
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			if tt.wantPath != "" && !containsPath(result.Errors, tt.wantPath) {
				t.Errorf("expected an error at %s, got %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestValidateStateDuplicateIDs(t *testing.T) {
	state := `[
	  {"id":"a","text":"x","completed":false,"priority":"low","createdAt":"2024-03-01T09:00:00Z"},
	  {"id":"a","text":"y","completed":false,"priority":"low","createdAt":"2024-03-01T09:00:00Z"}
	]`
	for _, skip := range []bool{false, true} {
		result := ValidateState([]byte(state), ValidationOptions{SkipSchema: skip})
		if result.Valid {
			t.Errorf("SkipSchema=%v: expected duplicate ids to be invalid", skip)
		}
		if !containsPath(result.Errors, "[1].id") {
			t.Errorf("SkipSchema=%v: expected error at [1].id, got %v", skip, result.Errors)
		}
	}
}

func TestValidateStateSchemaFile(t *testing.T) {
	t.Run("missing file falls back with warning", func(t *testing.T) {
		result := ValidateState([]byte(validState), ValidationOptions{SchemaPath: filepath.Join(t.TempDir(), "nope.json")})
		if result.UsedSchema {
			t.Error("expected fallback to minimal checks")
		}
		if len(result.Warnings) == 0 {
			t.Error("expected warnings")
		}
		if !result.Valid {
			t.Errorf("expected valid, got %v", result.Errors)
		}
	})

	t.Run("custom schema file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "todos.schema.json")
		if err := os.WriteFile(path, EmbeddedSchema(), 0644); err != nil {
			t.Fatal(err)
		}
		result := ValidateState([]byte(validState), ValidationOptions{SchemaPath: path})
		if !result.UsedSchema || !result.Valid {
			t.Errorf("UsedSchema=%v Valid=%v errors=%v", result.UsedSchema, result.Valid, result.Errors)
		}
	})
}

func TestValidateStateRejectsGarbage(t *testing.T) {
	result := ValidateState([]byte("not json"), ValidationOptions{})
	if result.Valid || len(result.Errors) == 0 {
		t.Error("expected parse error")
	}
}

func TestEmbeddedSchemaIsJSON(t *testing.T) {
	var v map[string]any
	if err := json.Unmarshal(EmbeddedSchema(), &v); err != nil {
		t.Fatalf("embedded schema is not JSON: %v", err)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"#":                "",
		"/0/text":          "[0].text",
		"#/2/weather/icon": "[2].weather.icon",
		"/a~1b/c~0d":       "a/b.c~d",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func containsPath(errs []error, path string) bool {
	for _, err := range errs {
		if strings.HasPrefix(err.Error(), path+":") || strings.HasPrefix(err.Error(), path) {
			return true
		}
	}
	return false
}
