package types

import "uat/internal/path"

// AddressQuestionDefinition asks for a postal address.
type AddressQuestionDefinition struct {
	definition
}

func NewAddressQuestionDefinition(cfg Config) *AddressQuestionDefinition {
	return &AddressQuestionDefinition{definition: newDefinition(cfg)}
}

func (q *AddressQuestionDefinition) Type() QuestionType { return Address }
func (q *AddressQuestionDefinition) Accept(v Visitor)   { v.VisitAddress(q) }
func (q *AddressQuestionDefinition) Validate() []error  { return q.validate() }

func (q *AddressQuestionDefinition) StreetPath() path.Path { return q.cfg.Path.Join("street") }
func (q *AddressQuestionDefinition) CityPath() path.Path   { return q.cfg.Path.Join("city") }
func (q *AddressQuestionDefinition) StatePath() path.Path  { return q.cfg.Path.Join("state") }
func (q *AddressQuestionDefinition) ZipPath() path.Path    { return q.cfg.Path.Join("zip") }

func (q *AddressQuestionDefinition) Equal(other QuestionDefinition) bool {
	o, ok := other.(*AddressQuestionDefinition)
	return ok && o != nil && q.cfg.equal(o.cfg)
}
