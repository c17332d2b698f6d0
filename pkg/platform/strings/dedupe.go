// Package strings holds small helpers for id lists.
package strings

import (
	"slices"
	"strings"
)

// DedupeAndTrim trims each value and drops blanks and repeats, keeping the
// first occurrence's position.
//
//	DedupeAndTrim([]string{" B001 ", "B002", "B001", ""})
//	// []string{"B001", "B002"}
func DedupeAndTrim(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// SortedUnique is DedupeAndTrim followed by a lexical sort.
func SortedUnique(values []string) []string {
	out := DedupeAndTrim(values)
	slices.Sort(out)
	return out
}
