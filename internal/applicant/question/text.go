package question

import (
	"unicode/utf8"

	"uat/internal/question/types"
)

type TextQuestion struct {
	view
	def *types.TextQuestionDefinition
}

func newTextQuestion(q *ApplicantQuestion, def *types.TextQuestionDefinition) *TextQuestion {
	return &TextQuestion{view: view{q: q}, def: def}
}

// Value returns the stored text. An empty string reads as absent.
func (t *TextQuestion) Value() (string, bool) {
	s, ok := t.q.data.ReadString(t.def.TextPath())
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (t *TextQuestion) IsAnswered() bool {
	_, ok := t.Value()
	return ok
}

func (t *TextQuestion) QuestionErrors() []ValidationError {
	return t.questionErrors(t.IsAnswered())
}

// TypeSpecificErrors checks the answer length in runes.
func (t *TextQuestion) TypeSpecificErrors() []ValidationError {
	s, ok := t.Value()
	if !ok {
		return nil
	}
	n := int64(utf8.RuneCountInString(s))
	r := t.def.LengthRange()
	if r.Min != nil && n < *r.Min {
		return []ValidationError{newValidationError(KeyTextTooShort, *r.Min)}
	}
	if r.Max != nil && n > *r.Max {
		return []ValidationError{newValidationError(KeyTextTooLong, *r.Max)}
	}
	return nil
}

func (t *TextQuestion) HasQuestionErrors() bool     { return len(t.QuestionErrors()) > 0 }
func (t *TextQuestion) HasTypeSpecificErrors() bool { return len(t.TypeSpecificErrors()) > 0 }
