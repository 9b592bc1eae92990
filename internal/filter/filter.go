// Package filter computes the visible subset of a post catalog for the
// current tag selection and search query. Filtering is pure: the same inputs
// always yield the same order-preserving subsequence.
package filter

import (
	"strings"

	"plume/internal/catalog"
)

// AllTag is the sentinel tag that clears the active tag filter.
const AllTag = "all"

// Visible applies the tag filter and the search query, in that order. Both
// compose conjunctively. An empty result is a valid output, not an error.
func Visible(cat *catalog.Catalog, activeTag, query string) []catalog.Post {
	out := make([]catalog.Post, 0, len(cat.Posts))

	query = strings.ToLower(query)
	for _, p := range cat.Posts {
		if activeTag != "" && !hasTag(p, activeTag) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Toggle returns the new active tag after the user selects one. Selecting the
// current tag again clears it, as does selecting the "all" sentinel.
func Toggle(active, selected string) string {
	if selected == AllTag || selected == active {
		return ""
	}
	return selected
}

// hasTag is an exact, case-sensitive membership check.
func hasTag(p catalog.Post, tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// matchesQuery reports whether the lowercased query is a substring of the
// post's title, excerpt, or any tag. Plain substring match, not tokenized.
func matchesQuery(p catalog.Post, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Excerpt), query) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}
