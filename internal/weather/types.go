package weather

import (
	"context"
	"errors"
	"fmt"
)

// Reading is a point-in-time weather snapshot attached to a task.
type Reading struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Condition   string  `json:"condition" yaml:"condition"`
	Icon        string  `json:"icon" yaml:"icon"`
}

// Provider fetches live readings.
type Provider interface {
	FetchByLocation(ctx context.Context, location string) (Reading, error)
}

// Source tells where a resolved reading came from.
type Source string

const (
	SourceLive      Source = "live"
	SourceSynthetic Source = "synthetic"
)

// ErrNotConfigured is returned by a client without a usable API key.
var ErrNotConfigured = errors.New("weather api key not configured")

// Failure kinds reported in ProviderError.Op.
const (
	OpConfig  = "config"
	OpRequest = "request"
	OpStatus  = "status"
	OpDecode  = "decode"
)

// ProviderError describes a failed live lookup.
type ProviderError struct {
	Op         string // One of the Op* kinds
	Location   string
	StatusCode int   // HTTP status, 0 when no response was received
	Err        error // Underlying error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("weather lookup %q: status %d: %s", e.Location, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("weather lookup %q: %s", e.Location, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
