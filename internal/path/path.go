// Package path addresses values inside an applicant data document.
//
// A Path is an immutable sequence of key segments, written in dotted form
// ("applicant.home.address.city"). Paths know nothing about question types;
// question definitions derive their sub-field paths with Join.
package path

import (
	"slices"
	"strings"
)

const separator = "."

// Path is comparable by value only through Equal; the zero value is the
// empty (root) path.
type Path struct {
	segments []string
}

// Create parses a dotted path. Empty segments are dropped, so "a..b" and
// ".a.b." both yield a.b.
func Create(dotted string) Path {
	parts := strings.Split(dotted, separator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	return Path{segments: segments}
}

// Empty returns the root path.
func Empty() Path {
	return Path{}
}

// Join returns a child path with segments appended. Segments containing the
// separator are split.
func (p Path) Join(segments ...string) Path {
	out := slices.Clone(p.segments)
	for _, s := range segments {
		out = append(out, Create(s).segments...)
	}
	return Path{segments: out}
}

// Parent returns the path without its last segment. The parent of the root is
// the root.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return p
	}
	return Path{segments: slices.Clone(p.segments[:len(p.segments)-1])}
}

// Segments returns a copy of the key segments.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// Last returns the final segment, or "" for the root.
func (p Path) Last() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

func (p Path) Len() int {
	return len(p.segments)
}

func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// StartsWith reports whether prefix is an ancestor of, or equal to, p.
func (p Path) StartsWith(prefix Path) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	return slices.Equal(p.segments[:len(prefix.segments)], prefix.segments)
}

func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// Compare orders paths segment by segment; a path sorts before its children.
func (p Path) Compare(other Path) int {
	return slices.Compare(p.segments, other.segments)
}

func (p Path) String() string {
	return strings.Join(p.segments, separator)
}

// MarshalText encodes the dotted form, so paths can be used in JSON and YAML.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(text []byte) error {
	*p = Create(string(text))
	return nil
}
