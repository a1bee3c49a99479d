// Package util holds small helpers shared by the console and the server.
package util

import (
	"sort"
	"strings"
)

// MakeTextList joins items into an English list, such as "a", "a and b", or
// "a, b, and c".
func MakeTextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}

	// if its more than two, use an oxford comma
	withAnd := make([]string, len(items))
	copy(withAnd, items)
	withAnd[len(withAnd)-1] = "and " + withAnd[len(withAnd)-1]
	return strings.Join(withAnd, ", ")
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// SortBy sorts sl in place using less and returns it.
func SortBy[E any](sl []E, less func(l, r E) bool) []E {
	sort.SliceStable(sl, func(i, j int) bool {
		return less(sl[i], sl[j])
	})
	return sl
}
