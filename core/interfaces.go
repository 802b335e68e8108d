// Package core defines the stage interfaces for linkharvest.
// The pipeline runs extract → save → fetch, strictly left to right.
package core

import (
	"context"

	"github.com/gaurav-prasanna/linkharvest/links"
)

// LinkExtractor collects hyperlink targets from an HTML document.
type LinkExtractor interface {
	// Extract returns the unique hrefs of all anchors in html, resolved
	// against baseURL when baseURL is non-empty.
	Extract(html string, baseURL string) *links.Set
}

// ContentReader returns a textual rendering of a single page.
type ContentReader interface {
	Read(ctx context.Context, url string) (string, error)
}

// ContentReaderFunc adapts a function to ContentReader.
type ContentReaderFunc func(ctx context.Context, url string) (string, error)

// Read calls f(ctx, url).
func (f ContentReaderFunc) Read(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// FetchRecord is one processed URL. It is written out and discarded.
type FetchRecord struct {
	Index int // 1-based
	URL   string
	Body  string
	Err   error
}

// FetchSummary reports the outcome of a fetch run.
type FetchSummary struct {
	Processed int
	Failed    int
}

// ProgressFunc is called after each URL is written.
type ProgressFunc func(rec FetchRecord, total int)
