// Package links holds the link set produced by extraction and the optional
// filtering rules applied to it.
package links

import "sort"

// Set is an insertion-ordered set of link strings.
// Membership is exact string equality; nothing is normalized.
type Set struct {
	items []string
	seen  map[string]bool
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{
		seen: make(map[string]bool),
	}
}

// Add inserts a link if it hasn't been seen before.
// It reports whether the link was new.
func (s *Set) Add(link string) bool {
	if s.seen[link] {
		return false
	}
	s.seen[link] = true
	s.items = append(s.items, link)
	return true
}

// Has reports whether link is in the set.
func (s *Set) Has(link string) bool {
	return s.seen[link]
}

// Len returns the number of unique links.
func (s *Set) Len() int {
	return len(s.items)
}

// Items returns the links in first-seen order.
func (s *Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Sorted returns the links in ascending byte-wise order.
func (s *Set) Sorted() []string {
	out := s.Items()
	sort.Strings(out)
	return out
}
