package types

import "uat/internal/path"

// TextQuestionDefinition asks for free text, optionally length-bounded.
type TextQuestionDefinition struct {
	definition
	lengthRange Range
}

func NewTextQuestionDefinition(cfg Config, lengthRange Range) *TextQuestionDefinition {
	return &TextQuestionDefinition{definition: newDefinition(cfg), lengthRange: lengthRange.clone()}
}

func (q *TextQuestionDefinition) Type() QuestionType { return Text }
func (q *TextQuestionDefinition) Accept(v Visitor)   { v.VisitText(q) }

func (q *TextQuestionDefinition) TextPath() path.Path { return q.cfg.Path.Join("text") }

// LengthRange bounds the answer length, counted in runes.
func (q *TextQuestionDefinition) LengthRange() Range { return q.lengthRange.clone() }

func (q *TextQuestionDefinition) Validate() []error {
	return append(q.validate(), validateRange(q.lengthRange, "length", true)...)
}

func (q *TextQuestionDefinition) Equal(other QuestionDefinition) bool {
	o, ok := other.(*TextQuestionDefinition)
	return ok && o != nil && q.cfg.equal(o.cfg) && q.lengthRange.Equal(o.lengthRange)
}
