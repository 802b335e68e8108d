// Package extract pulls structure out of HTML documents: the anchor targets
// used to build the URL list, and the main content container used when
// pages are read locally instead of through the reader API.
//
// The main content is isolated by:
//  1. Removing noise elements (nav, footer, scripts, images, etc.)
//  2. Finding the best content container (<main>, <article>, or <body>)
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoContent is returned when a page has no usable content container.
var ErrNoContent = errors.New("no content container found in HTML")

// noiseSelectors are HTML elements removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// ContentExtractor strips noise from a page and exposes its main content.
type ContentExtractor struct{}

// NewContentExtractor creates a ContentExtractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// MainHTML returns the cleaned HTML fragment of the main content container.
func (e *ContentExtractor) MainHTML(html string) (string, error) {
	content, err := e.main(html)
	if err != nil {
		return "", err
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}

// MainText returns the whitespace-collapsed text of the main content container.
func (e *ContentExtractor) MainText(html string) (string, error) {
	content, err := e.main(html)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(content.Text()), " "), nil
}

func (e *ContentExtractor) main(html string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// Noise goes first so it can't leak into the chosen container.
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			return sel.First(), nil
		}
	}
	return nil, ErrNoContent
}
