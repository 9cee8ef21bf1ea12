// Package search holds the search term and suggestion state, and filters a
// loaded page by name.
package search

import (
	"strings"

	"github.com/macropower/namify/pkg/catalog"
)

// State is the current search term and the most recently applied
// suggestions, in server order.
type State struct {
	Term        string
	Suggestions []string
}

// Blank reports whether term contains no searchable characters.
func Blank(term string) bool {
	return strings.TrimSpace(term) == ""
}

// Matches reports whether name contains term, ignoring case. An empty term
// matches everything.
func Matches(name, term string) bool {
	if term == "" {
		return true
	}

	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}

// Filter returns the items whose name contains term, ignoring case, in
// their original order. The input slice is not modified.
//
// Filtering is independent of how the service matches suggestions, so the
// two may disagree.
func Filter(items []catalog.Item, term string) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if Matches(item.Name, term) {
			out = append(out, item)
		}
	}

	return out
}

// DuplicateNames returns the names that occur more than once in items, in
// order of first occurrence.
func DuplicateNames(items []catalog.Item) []string {
	seen := make(map[string]int, len(items))

	var dups []string

	for _, item := range items {
		seen[item.Name]++
		if seen[item.Name] == 2 {
			dups = append(dups, item.Name)
		}
	}

	return dups
}
