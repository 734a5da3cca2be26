package question

import (
	"strings"

	"uat/internal/path"
	"uat/internal/question/types"
)

type NameQuestion struct {
	view
	def *types.NameQuestionDefinition
}

func newNameQuestion(q *ApplicantQuestion, def *types.NameQuestionDefinition) *NameQuestion {
	return &NameQuestion{view: view{q: q}, def: def}
}

func (n *NameQuestion) FirstName() (string, bool)  { return n.read(n.def.FirstNamePath()) }
func (n *NameQuestion) MiddleName() (string, bool) { return n.read(n.def.MiddleNamePath()) }
func (n *NameQuestion) LastName() (string, bool)   { return n.read(n.def.LastNamePath()) }

func (n *NameQuestion) read(p path.Path) (string, bool) {
	s, ok := n.q.data.ReadString(p)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func (n *NameQuestion) IsAnswered() bool {
	_, first := n.FirstName()
	_, middle := n.MiddleName()
	_, last := n.LastName()
	return first || middle || last
}

func (n *NameQuestion) QuestionErrors() []ValidationError {
	return n.questionErrors(n.IsAnswered())
}

// TypeSpecificErrors requires first and last name once any part is given.
func (n *NameQuestion) TypeSpecificErrors() []ValidationError {
	if !n.IsAnswered() {
		return nil
	}
	var errs []ValidationError
	if _, ok := n.FirstName(); !ok {
		errs = append(errs, newValidationError(KeyFirstNameRequired))
	}
	if _, ok := n.LastName(); !ok {
		errs = append(errs, newValidationError(KeyLastNameRequired))
	}
	return errs
}

func (n *NameQuestion) HasQuestionErrors() bool     { return len(n.QuestionErrors()) > 0 }
func (n *NameQuestion) HasTypeSpecificErrors() bool { return len(n.TypeSpecificErrors()) > 0 }
