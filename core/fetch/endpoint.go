// Package fetch reads the rendered content of URLs, either through a remote
// content-extraction endpoint or locally, and writes the results in order.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the reader API every URL is appended to.
	DefaultEndpoint = "https://r.jina.ai"

	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "linkharvest/1.0 (https://github.com/gaurav-prasanna/linkharvest)"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s for url: %s", e.Status, e.URL)
}

// EndpointReader reads pages through a remote content-extraction API:
// GET {endpoint}/{url} with a bearer token.
type EndpointReader struct {
	client    *http.Client
	endpoint  string
	apiKey    string
	userAgent string
}

// EndpointOption configures an EndpointReader.
type EndpointOption func(*EndpointReader)

// WithHTTPClient replaces the HTTP client. A nil client is ignored.
func WithHTTPClient(c *http.Client) EndpointOption {
	return func(r *EndpointReader) {
		if c != nil {
			r.client = c
		}
	}
}

// WithTimeout sets the timeout of a single request. The reader works on its
// own copy of the client, so a client passed to WithHTTPClient is not changed.
func WithTimeout(d time.Duration) EndpointOption {
	return func(r *EndpointReader) {
		if d > 0 {
			c := *r.client
			c.Timeout = d
			r.client = &c
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) EndpointOption {
	return func(r *EndpointReader) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// NewEndpointReader creates an EndpointReader. An empty endpoint selects
// DefaultEndpoint.
func NewEndpointReader(endpoint, apiKey string, opts ...EndpointOption) *EndpointReader {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	r := &EndpointReader{
		client:    &http.Client{Timeout: defaultTimeout},
		endpoint:  strings.TrimRight(endpoint, "/"),
		apiKey:    apiKey,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RequestURL returns the endpoint URL used to read pageURL.
func (r *EndpointReader) RequestURL(pageURL string) string {
	return r.endpoint + "/" + pageURL
}

// Read performs a single GET for pageURL and returns the response body.
// There is no retry.
func (r *EndpointReader) Read(ctx context.Context, pageURL string) (string, error) {
	reqURL := r.RequestURL(pageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: reqURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}
