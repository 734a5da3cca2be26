package types

import "uat/internal/path"

// NameQuestionDefinition asks for a person's name.
type NameQuestionDefinition struct {
	definition
}

func NewNameQuestionDefinition(cfg Config) *NameQuestionDefinition {
	return &NameQuestionDefinition{definition: newDefinition(cfg)}
}

func (q *NameQuestionDefinition) Type() QuestionType { return Name }
func (q *NameQuestionDefinition) Accept(v Visitor)   { v.VisitName(q) }
func (q *NameQuestionDefinition) Validate() []error  { return q.validate() }

func (q *NameQuestionDefinition) FirstNamePath() path.Path  { return q.cfg.Path.Join("first") }
func (q *NameQuestionDefinition) MiddleNamePath() path.Path { return q.cfg.Path.Join("middle") }
func (q *NameQuestionDefinition) LastNamePath() path.Path   { return q.cfg.Path.Join("last") }

func (q *NameQuestionDefinition) Equal(other QuestionDefinition) bool {
	o, ok := other.(*NameQuestionDefinition)
	return ok && o != nil && q.cfg.equal(o.cfg)
}
