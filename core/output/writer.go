// Package output writes the content file: one divider block per fetched URL,
// in input order, followed by the fetched body or the inline error text.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DividerWidth is the number of '=' characters in a divider line.
const DividerWidth = 80

// Divider is a full divider line, without the newline.
var Divider = strings.Repeat("=", DividerWidth)

// ContentWriter appends divider blocks to an underlying writer.
// Each record is flushed as soon as it is written, so a partial run leaves
// every completed record on disk.
type ContentWriter struct {
	w       *bufio.Writer
	closer  io.Closer
	Path    string
	written int
}

// NewContentWriter wraps w. Closing the ContentWriter does not close w.
func NewContentWriter(w io.Writer) *ContentWriter {
	return &ContentWriter{w: bufio.NewWriter(w)}
}

// Create truncates (or creates) the content file at path.
func Create(path string) (*ContentWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating content file %s: %w", path, err)
	}

	cw := NewContentWriter(f)
	cw.closer = f
	cw.Path = path
	return cw, nil
}

// WriteRecord writes one block:
//
//	\n
//	================...
//	URL {index}: {url}
//	================...
//	{body}\n
func (cw *ContentWriter) WriteRecord(index int, url string, body string) error {
	if _, err := fmt.Fprintf(cw.w, "\n%s\nURL %d: %s\n%s\n%s\n", Divider, index, url, Divider, body); err != nil {
		return cw.wrap(err)
	}
	if err := cw.w.Flush(); err != nil {
		return cw.wrap(err)
	}
	cw.written++
	return nil
}

// Written returns the number of records written so far.
func (cw *ContentWriter) Written() int {
	return cw.written
}

// Close flushes buffered output and closes the file when the writer owns one.
func (cw *ContentWriter) Close() error {
	if err := cw.w.Flush(); err != nil {
		return cw.wrap(err)
	}
	if cw.closer != nil {
		if err := cw.closer.Close(); err != nil {
			return cw.wrap(err)
		}
		cw.closer = nil
	}
	return nil
}

func (cw *ContentWriter) wrap(err error) error {
	if cw.Path == "" {
		return fmt.Errorf("writing content: %w", err)
	}
	return fmt.Errorf("writing content file %s: %w", cw.Path, err)
}

// SuggestPath derives a sibling file name by replacing the extension of path
// with suffix: SuggestPath("page.html", "_urls.txt") is "page_urls.txt".
func SuggestPath(path string, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix
}
