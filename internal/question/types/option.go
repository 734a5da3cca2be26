package types

import (
	"maps"

	"golang.org/x/text/language"

	"uat/internal/l10n"
)

// QuestionOption is one selectable answer of a Dropdown, RadioButton or
// Checkbox question.
type QuestionOption struct {
	ID   int64
	Text map[language.Tag]string
}

// NewQuestionOption copies text so later changes to the caller's map do not
// leak into the definition.
func NewQuestionOption(id int64, text map[language.Tag]string) QuestionOption {
	return QuestionOption{ID: id, Text: l10n.Clone(text)}
}

// Localize resolves the option text for locale, falling back to the default
// locale and then to the first locale in tag order.
func (o QuestionOption) Localize(locale language.Tag) LocalizedQuestionOption {
	text, used, _ := l10n.Resolve(o.Text, locale)
	return LocalizedQuestionOption{ID: o.ID, Text: text, Locale: used}
}

func (o QuestionOption) Equal(other QuestionOption) bool {
	return o.ID == other.ID && maps.Equal(o.Text, other.Text)
}

func (o QuestionOption) clone() QuestionOption {
	return NewQuestionOption(o.ID, o.Text)
}

// LocalizedQuestionOption is an option projected into a single locale.
type LocalizedQuestionOption struct {
	ID     int64
	Text   string
	Locale language.Tag
}

// Range is an inclusive interval where either bound may be open.
type Range struct {
	Min *int64
	Max *int64
}

func Between(lo, hi int64) Range { return Range{Min: &lo, Max: &hi} }
func AtLeast(lo int64) Range     { return Range{Min: &lo} }
func AtMost(hi int64) Range      { return Range{Max: &hi} }

func (r Range) IsOpen() bool {
	return r.Min == nil && r.Max == nil
}

func (r Range) Contains(v int64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func (r Range) Equal(other Range) bool {
	return equalBound(r.Min, other.Min) && equalBound(r.Max, other.Max)
}

func (r Range) clone() Range {
	var out Range
	if r.Min != nil {
		lo := *r.Min
		out.Min = &lo
	}
	if r.Max != nil {
		hi := *r.Max
		out.Max = &hi
	}
	return out
}

func equalBound(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
