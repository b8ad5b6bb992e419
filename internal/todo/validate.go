package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/todos.schema.json
var embeddedSchema []byte

const embeddedSchemaURL = "https://github.com/nibzard/weatherdo/todos.schema.json"

// EmbeddedSchema returns the built-in JSON Schema for persisted tasks.
func EmbeddedSchema() []byte {
	return append([]byte(nil), embeddedSchema...)
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the embedded schema with a schema file.
	SchemaPath string
	// SkipSchema forces the minimal fallback checks.
	SkipSchema bool
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
	Tasks      int  // number of task entries found
}

// ValidateState validates the raw "todos" value of the persisted state.
// Duplicate ids are always reported, with or without a schema.
func ValidateState(data []byte, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("parse todos: %w", err)})
		return result
	}

	items, _ := doc.([]any)
	result.Tasks = len(items)

	if !opts.SkipSchema {
		schema, warning := compileSchema(opts.SchemaPath)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if schema != nil {
			result.UsedSchema = true
			if err := schema.Validate(doc); err != nil {
				result.Valid = false
				appendSchemaErrors(result, err)
			}
			checkDuplicateIDs(result, items)
			return result
		}
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	validateMinimal(result, doc)
	checkDuplicateIDs(result, items)
	return result
}

func compileSchema(path string) (*jsonschema.Schema, string) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if path == "" {
		if err := compiler.AddResource(embeddedSchemaURL, bytes.NewReader(embeddedSchema)); err != nil {
			return nil, fmt.Sprintf("invalid embedded schema: %v", err)
		}
		schema, err := compiler.Compile(embeddedSchemaURL)
		if err != nil {
			return nil, fmt.Sprintf("invalid embedded schema: %v", err)
		}
		return schema, ""
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("schema file not found: %s", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v", err)
	}
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v", err)
	}
	return schema, ""
}

// validateMinimal performs structural checks without JSON Schema.
func validateMinimal(result *ValidationResult, doc any) {
	items, ok := doc.([]any)
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: errors.New("expected an array of tasks")})
		return
	}

	for i, item := range items {
		path := fmt.Sprintf("[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path, Err: errors.New("expected an object")})
			continue
		}
		if err := validateTaskMinimal(obj, path); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err)
		}
	}
}

// validateTaskMinimal performs minimal task validation.
func validateTaskMinimal(obj map[string]any, path string) *ValidationError {
	if id, _ := obj["id"].(string); id == "" {
		return &ValidationError{Path: path + ".id", Err: errors.New("missing required field")}
	}

	text, _ := obj["text"].(string)
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Path: path + ".text", Err: ErrEmptyText}
	}

	if _, ok := obj["completed"].(bool); !ok {
		return &ValidationError{Path: path + ".completed", Err: errors.New("must be a boolean")}
	}

	p, _ := obj["priority"].(string)
	if !Priority(p).Valid() {
		return &ValidationError{Path: path + ".priority", Err: fmt.Errorf("invalid priority %q, must be one of: low, medium, high", p)}
	}

	created, _ := obj["createdAt"].(string)
	if _, err := time.Parse(time.RFC3339, created); err != nil {
		return &ValidationError{Path: path + ".createdAt", Err: fmt.Errorf("invalid timestamp %q", created)}
	}

	return nil
}

func checkDuplicateIDs(result *ValidationResult, items []any) {
	seen := make(map[string]int)
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := obj["id"].(string)
		if id == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q (first at [%d])", id, first),
			})
			continue
		}
		seen[id] = i
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts "/2/weather/icon" into "[2].weather.icon".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
