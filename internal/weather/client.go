package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	// PlaceholderAPIKey is the value shipped in example configs.
	PlaceholderAPIKey = "YOUR_API_KEY"

	iconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"
	maxBodyBytes    = 1 << 20
)

// IconURL returns the CDN URL for an icon code such as "04d".
func IconURL(code string) string {
	return fmt.Sprintf(iconURLTemplate, code)
}

// HasCredential reports whether apiKey can be used for live lookups.
func HasCredential(apiKey string) bool {
	key := strings.TrimSpace(apiKey)
	return key != "" && key != PlaceholderAPIKey
}

// Client queries the live weather endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the transport timeout. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient creates a client for the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client has a usable API key.
func (c *Client) Configured() bool {
	return HasCredential(c.apiKey)
}

type currentResponse struct {
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
}

// FetchByLocation returns the current conditions for location.
// All failures are reported as *ProviderError.
func (c *Client) FetchByLocation(ctx context.Context, location string) (Reading, error) {
	if !c.Configured() {
		return Reading{}, &ProviderError{Op: OpConfig, Location: location, Err: ErrNotConfigured}
	}

	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	endpoint := c.baseURL + "/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Reading{}, &ProviderError{Op: OpRequest, Location: location, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Reading{}, &ProviderError{Op: OpRequest, Location: location, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Reading{}, &ProviderError{Op: OpRequest, Location: location, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return Reading{}, &ProviderError{Op: OpStatus, Location: location, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body)))}
	}

	reading, err := decodeCurrent(body)
	if err != nil {
		return Reading{}, &ProviderError{Op: OpDecode, Location: location, StatusCode: resp.StatusCode, Err: err}
	}
	return reading, nil
}

func decodeCurrent(body []byte) (Reading, error) {
	var parsed currentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Reading{}, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Main == nil || parsed.Main.Temp == nil {
		return Reading{}, fmt.Errorf("decode response: missing main.temp")
	}
	if len(parsed.Weather) == 0 {
		return Reading{}, fmt.Errorf("decode response: missing weather[0]")
	}
	return Reading{
		Temperature: *parsed.Main.Temp,
		Condition:   parsed.Weather[0].Main,
		Icon:        IconURL(parsed.Weather[0].Icon),
	}, nil
}
