// Package store persists URL lists as line-delimited UTF-8 text.
package store

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// Save writes urls to path sorted ascending, one per line, overwriting any
// existing file. Duplicates and empty strings are dropped. It returns the
// number of lines written.
func Save(urls []string, path string) (int, error) {
	lines := uniqueSorted(urls)

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating URL file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, u := range lines {
		if _, err := w.WriteString(u + "\n"); err != nil {
			return 0, fmt.Errorf("writing URL file %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("writing URL file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing URL file %s: %w", path, err)
	}
	return len(lines), nil
}

// Load reads the URL file at path. Lines are trimmed and blank lines are
// skipped; order is preserved and nothing is deduplicated, so a hand-edited
// list is used as-is.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening URL file %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("reading URL file %s: line %d is not valid UTF-8", path, lineNo)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URL file %s: %w", path, err)
	}
	return urls, nil
}

func uniqueSorted(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
