package question

import "uat/internal/question/types"

type NumberQuestion struct {
	view
	def *types.NumberQuestionDefinition
}

func newNumberQuestion(q *ApplicantQuestion, def *types.NumberQuestionDefinition) *NumberQuestion {
	return &NumberQuestion{view: view{q: q}, def: def}
}

// Value returns the answer when it is a whole number.
func (n *NumberQuestion) Value() (int64, bool) {
	return n.q.data.ReadLong(n.def.NumberPath())
}

// IsAnswered is true when anything is stored, even a malformed value.
func (n *NumberQuestion) IsAnswered() bool {
	return n.q.data.HasPath(n.def.NumberPath())
}

func (n *NumberQuestion) QuestionErrors() []ValidationError {
	return n.questionErrors(n.IsAnswered())
}

func (n *NumberQuestion) TypeSpecificErrors() []ValidationError {
	if !n.IsAnswered() {
		return nil
	}
	v, ok := n.Value()
	if !ok {
		return []ValidationError{newValidationError(KeyNumberInvalid)}
	}
	r := n.def.ValueRange()
	if r.Min != nil && v < *r.Min {
		return []ValidationError{newValidationError(KeyNumberTooSmall, *r.Min)}
	}
	if r.Max != nil && v > *r.Max {
		return []ValidationError{newValidationError(KeyNumberTooLarge, *r.Max)}
	}
	return nil
}

func (n *NumberQuestion) HasQuestionErrors() bool     { return len(n.QuestionErrors()) > 0 }
func (n *NumberQuestion) HasTypeSpecificErrors() bool { return len(n.TypeSpecificErrors()) > 0 }
