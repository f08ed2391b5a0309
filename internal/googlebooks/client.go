// Package googlebooks imports catalog data from the Google Books API.
//
// The importer drives paginated subject searches, filters out volumes
// without cover art, deduplicates by volume id and maps the survivors into
// the three catalog collections.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"libreria/internal/ratelimit"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1"
	// MaxPageSize is the largest page the volumes endpoint accepts.
	MaxPageSize = 40

	defaultRatePerSecond = 2
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Google Books API client.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a new Google Books client. The API key is optional;
// when empty the GOOGLE_BOOKS_API_KEY environment variable is used.
func NewClient(opts ...Option) *Client {
	client := &Client{
		apiKey:      os.Getenv("GOOGLE_BOOKS_API_KEY"),
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.New("GoogleBooks", defaultRatePerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithAPIKey sets the API key explicitly.
func WithAPIKey(key string) Option {
	return func(client *Client) {
		client.apiKey = key
	}
}

// SearchSubject fetches one page of volumes for a subject query, restricted
// to the given language. pageSize is clamped to MaxPageSize.
func (c *Client) SearchSubject(ctx context.Context, subject, language string, pageSize, startIndex int) ([]Volume, error) {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	params := url.Values{}
	params.Set("q", "subject:"+subject)
	params.Set("maxResults", strconv.Itoa(pageSize))
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("printType", "books")
	if language != "" {
		params.Set("langRestrict", language)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	endpoint := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google books request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("google books returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding google books response: %w", err)
	}

	return result.Items, nil
}
