package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gaurav-prasanna/linkharvest/core/extract"
	"github.com/gaurav-prasanna/linkharvest/core/normalize"
	"github.com/markusmobius/go-trafilatura"
	"github.com/temoto/robotstxt"
)

// maxPageSize caps how much of a page the local reader will buffer.
const maxPageSize = 10 << 20

var (
	// ErrUnsupportedURL is returned for URLs that are not http(s).
	ErrUnsupportedURL = errors.New("unsupported URL scheme")
	// ErrDisallowed is returned when robots.txt forbids the page.
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// LocalFormat selects how the local reader renders a page.
type LocalFormat string

const (
	FormatMarkdown LocalFormat = "markdown"
	FormatText     LocalFormat = "text"
)

// LocalReader reads pages directly, without a reader API.
type LocalReader struct {
	client        *http.Client
	userAgent     string
	format        LocalFormat
	respectRobots bool
	extractor     *extract.ContentExtractor
	normalizer    *normalize.MarkdownNormalizer

	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData
}

// LocalOptions configures a LocalReader.
type LocalOptions struct {
	Client        *http.Client
	Timeout       time.Duration
	UserAgent     string
	Format        LocalFormat
	RespectRobots bool
}

// NewLocalReader creates a LocalReader.
func NewLocalReader(opts LocalOptions) *LocalReader {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	format := opts.Format
	if format == "" {
		format = FormatMarkdown
	}
	return &LocalReader{
		client:        client,
		userAgent:     ua,
		format:        format,
		respectRobots: opts.RespectRobots,
		extractor:     extract.NewContentExtractor(),
		normalizer:    normalize.New(),
		robots:        make(map[string]*robotstxt.RobotsData),
	}
}

// Read fetches pageURL and renders its main content.
func (r *LocalReader) Read(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedURL, pageURL)
	}

	if r.respectRobots && !r.allowed(ctx, u) {
		return "", fmt.Errorf("%w: %s", ErrDisallowed, pageURL)
	}

	html, err := r.get(ctx, pageURL)
	if err != nil {
		return "", err
	}

	switch r.format {
	case FormatText:
		return r.renderText(html)
	default:
		return r.renderMarkdown(html, u.Scheme+"://"+u.Host)
	}
}

func (r *LocalReader) get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: pageURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

func (r *LocalReader) renderMarkdown(html string, domain string) (string, error) {
	fragment, err := r.extractor.MainHTML(html)
	if err != nil {
		return "", err
	}
	return r.normalizer.Normalize(fragment, domain)
}

// renderText prefers trafilatura's main-text extraction and falls back to the
// noise-stripped container text when it finds nothing.
func (r *LocalReader) renderText(html string) (string, error) {
	result, err := trafilatura.Extract(strings.NewReader(html), trafilatura.Options{})
	if err == nil && result != nil && strings.TrimSpace(result.ContentText) != "" {
		return result.ContentText, nil
	}
	return r.extractor.MainText(html)
}

// allowed checks robots.txt for u's host, caching one result per host.
// A missing or unreadable robots.txt allows everything.
func (r *LocalReader) allowed(ctx context.Context, u *url.URL) bool {
	host := u.Scheme + "://" + u.Host

	r.mu.Lock()
	data, ok := r.robots[host]
	r.mu.Unlock()

	if !ok {
		data = r.fetchRobots(ctx, host)
		r.mu.Lock()
		r.robots[host] = data
		r.mu.Unlock()
	}
	if data == nil {
		return true
	}
	return data.TestAgent(u.RequestURI(), r.userAgent)
}

func (r *LocalReader) fetchRobots(ctx context.Context, host string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}
