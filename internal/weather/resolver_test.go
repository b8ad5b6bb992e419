package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"
)

type stubProvider struct {
	reading Reading
	err     error
	calls   int
}

func (s *stubProvider) FetchByLocation(ctx context.Context, location string) (Reading, error) {
	s.calls++
	return s.reading, s.err
}

func TestResolve(t *testing.T) {
	t.Run("returns live reading", func(t *testing.T) {
		live := Reading{Temperature: 21, Condition: "Clear", Icon: IconURL("01n")}
		r := NewResolver(&stubProvider{reading: live}, nil, nil)

		got := r.Resolve(context.Background(), "Lisbon")
		if got.Source != SourceLive || got.Reading != live {
			t.Errorf("Resolve() = %+v, want live %+v", got, live)
		}
	})

	t.Run("falls back on provider error", func(t *testing.T) {
		p := &stubProvider{err: &ProviderError{Location: "Lisbon", Err: errors.New("boom")}}
		r := NewResolver(p, nil, nil)

		got := r.Resolve(context.Background(), "Lisbon")
		if got.Source != SourceSynthetic {
			t.Fatalf("Source = %q, want synthetic", got.Source)
		}
		if !slices.Contains(Conditions, got.Reading.Condition) {
			t.Errorf("unexpected synthetic condition %q", got.Reading.Condition)
		}
		if p.calls != 1 {
			t.Errorf("provider calls = %d, want 1", p.calls)
		}
	})

	t.Run("nil provider is synthetic only", func(t *testing.T) {
		r := NewResolver(nil, nil, nil)
		if r.Live() {
			t.Error("Live() = true, want false")
		}
		if got := r.Resolve(context.Background(), ""); got.Source != SourceSynthetic {
			t.Errorf("Source = %q, want synthetic", got.Source)
		}
	})

	t.Run("placeholder key skips network", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer srv.Close()

		r := NewResolverFromKey(PlaceholderAPIKey, nil, WithBaseURL(srv.URL))
		got := r.Resolve(context.Background(), "Berlin")
		if got.Source != SourceSynthetic {
			t.Errorf("Source = %q, want synthetic", got.Source)
		}
		if hits.Load() != 0 {
			t.Errorf("server hits = %d, want 0", hits.Load())
		}
	})

	t.Run("server error falls back", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		r := NewResolverFromKey("real-key", nil, WithBaseURL(srv.URL))
		if !r.Live() {
			t.Fatal("Live() = false, want true")
		}
		if got := r.Resolve(context.Background(), "Berlin"); got.Source != SourceSynthetic {
			t.Errorf("Source = %q, want synthetic", got.Source)
		}
	})
}
