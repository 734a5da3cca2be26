// Package strings parses delimited lists from configuration.
package strings

import (
	"strings"
)

// SplitList splits raw on sep and returns the trimmed, distinct, non-empty
// elements in first-seen order, or nil when none remain.
func SplitList(raw, sep string) []string {
	out := DedupeAndTrim(strings.Split(raw, sep))
	if len(out) == 0 {
		return nil
	}
	return out
}

// DedupeAndTrim trims each element and drops empty and repeated ones,
// preserving order.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
