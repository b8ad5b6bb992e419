package weather

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/nibzard/weatherdo/internal/logging"
)

// Resolution is a reading together with its origin.
type Resolution struct {
	Reading Reading
	Source  Source
}

// Resolver applies the live-or-synthetic policy used everywhere a task needs weather.
type Resolver struct {
	provider  Provider
	generator *Generator
	logger    *log.Logger
}

// NewResolver creates a resolver. A nil provider resolves every location synthetically.
func NewResolver(provider Provider, generator *Generator, logger *log.Logger) *Resolver {
	if generator == nil {
		generator = defaultGenerator
	}
	return &Resolver{
		provider:  provider,
		generator: generator,
		logger:    logging.OrDiscard(logger),
	}
}

// NewResolverFromKey builds a resolver around a Client when apiKey is usable,
// and a synthetic-only resolver otherwise.
func NewResolverFromKey(apiKey string, logger *log.Logger, opts ...ClientOption) *Resolver {
	if !HasCredential(apiKey) {
		logging.OrDiscard(logger).Debug("no weather api key, using synthetic readings")
		return NewResolver(nil, nil, logger)
	}
	return NewResolver(NewClient(apiKey, opts...), nil, logger)
}

// Live reports whether the resolver will attempt network lookups.
func (r *Resolver) Live() bool {
	if r.provider == nil {
		return false
	}
	if c, ok := r.provider.(*Client); ok {
		return c.Configured()
	}
	return true
}

// Resolve returns a live reading when possible and a synthetic one otherwise.
// It never fails.
func (r *Resolver) Resolve(ctx context.Context, location string) Resolution {
	if !r.Live() {
		return Resolution{Reading: r.generator.Reading(location), Source: SourceSynthetic}
	}

	reading, err := r.provider.FetchByLocation(ctx, location)
	if err != nil {
		r.logger.Warn("weather lookup failed, using synthetic reading", "location", location, "err", err)
		return Resolution{Reading: r.generator.Reading(location), Source: SourceSynthetic}
	}

	r.logger.Debug("weather lookup", "location", location, "condition", reading.Condition, "temperature", reading.Temperature)
	return Resolution{Reading: reading, Source: SourceLive}
}
