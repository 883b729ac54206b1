// Package interest normalizes user interest sets.
//
// Interests are free-form strings entered by users. Before they reach the
// store or the similarity computation they are trimmed, lower-cased, and
// deduplicated, so "  Hiking " and "hiking" count as one interest.
package interest

import (
	"sort"
	"strings"
)

// Normalize returns the canonical form of a single raw interest.
// An all-whitespace input normalizes to the empty string.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NewSet normalizes and deduplicates raw interests into a set.
// Empty entries are dropped.
func NewSet(raw []string) map[string]struct{} {
	set := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		n := Normalize(r)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Sorted returns the set's members in ascending order. Sets have no
// ordering of their own; sorting here keeps every outbound representation
// deterministic.
func Sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the members present in both sets, sorted ascending.
func Intersect(a, b map[string]struct{}) []string {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	common := make([]string, 0, len(small))
	for s := range small {
		if _, ok := large[s]; ok {
			common = append(common, s)
		}
	}
	sort.Strings(common)
	return common
}
