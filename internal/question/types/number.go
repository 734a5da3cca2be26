package types

import "uat/internal/path"

// NumberQuestionDefinition asks for a whole number, optionally bounded.
type NumberQuestionDefinition struct {
	definition
	valueRange Range
}

func NewNumberQuestionDefinition(cfg Config, valueRange Range) *NumberQuestionDefinition {
	return &NumberQuestionDefinition{definition: newDefinition(cfg), valueRange: valueRange.clone()}
}

func (q *NumberQuestionDefinition) Type() QuestionType { return Number }
func (q *NumberQuestionDefinition) Accept(v Visitor)   { v.VisitNumber(q) }

func (q *NumberQuestionDefinition) NumberPath() path.Path { return q.cfg.Path.Join("number") }

// ValueRange is the inclusive interval an answer must fall in.
func (q *NumberQuestionDefinition) ValueRange() Range { return q.valueRange.clone() }

func (q *NumberQuestionDefinition) Validate() []error {
	return append(q.validate(), validateRange(q.valueRange, "value", false)...)
}

func (q *NumberQuestionDefinition) Equal(other QuestionDefinition) bool {
	o, ok := other.(*NumberQuestionDefinition)
	return ok && o != nil && q.cfg.equal(o.cfg) && q.valueRange.Equal(o.valueRange)
}
