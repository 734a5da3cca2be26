// Package question binds a question definition to an applicant's answers and
// exposes typed, validating views over them.
//
// Validation never fails with an error value: unanswered and malformed
// answers are reported through PresentsErrors so callers can re-render the
// form. Calling a Create method that does not match the definition's type is
// a programming error and panics.
package question

import (
	"fmt"

	"golang.org/x/text/language"

	"uat/internal/applicant/data"
	"uat/internal/path"
	"uat/internal/question/types"
)

// ApplicantQuestion pairs a definition with the document holding the answer.
// The document is borrowed, not copied; views read it on every call.
type ApplicantQuestion struct {
	def  types.QuestionDefinition
	data *data.ApplicantData
}

func New(def types.QuestionDefinition, d *data.ApplicantData) *ApplicantQuestion {
	if d == nil {
		d = data.New()
	}
	return &ApplicantQuestion{def: def, data: d}
}

func (q *ApplicantQuestion) Definition() types.QuestionDefinition { return q.def }
func (q *ApplicantQuestion) Data() *data.ApplicantData            { return q.data }
func (q *ApplicantQuestion) Type() types.QuestionType             { return q.def.Type() }
func (q *ApplicantQuestion) Path() path.Path                      { return q.def.Path() }

// Locale is the applicant's preferred locale.
func (q *ApplicantQuestion) Locale() language.Tag {
	return q.data.PreferredLocale()
}

func (q *ApplicantQuestion) QuestionText() string {
	return q.def.QuestionTextOrDefault(q.Locale())
}

func (q *ApplicantQuestion) HelpText() string {
	return q.def.HelpTextOrDefault(q.Locale())
}

// HasErrors reports whether the typed view has any question-level or
// type-specific error.
func (q *ApplicantQuestion) HasErrors() bool {
	p := q.ErrorsPresenter()
	return p.HasQuestionErrors() || p.HasTypeSpecificErrors()
}

// ErrorsPresenter returns the typed view matching the definition.
func (q *ApplicantQuestion) ErrorsPresenter() PresentsErrors {
	v := &presenterVisitor{q: q}
	q.def.Accept(v)
	return v.presenter
}

// Equal compares definitions structurally and documents by content.
func (q *ApplicantQuestion) Equal(other *ApplicantQuestion) bool {
	if q == nil || other == nil {
		return q == other
	}
	return q.def.Equal(other.def) && q.data.Equal(other.data)
}

func (q *ApplicantQuestion) CreateAddressQuestion() *AddressQuestion {
	def, ok := q.def.(*types.AddressQuestionDefinition)
	if !ok {
		q.wrongType(types.Address)
	}
	return newAddressQuestion(q, def)
}

func (q *ApplicantQuestion) CreateFileUploadQuestion() *FileUploadQuestion {
	def, ok := q.def.(*types.FileUploadQuestionDefinition)
	if !ok {
		q.wrongType(types.FileUpload)
	}
	return newFileUploadQuestion(q, def)
}

func (q *ApplicantQuestion) CreateNameQuestion() *NameQuestion {
	def, ok := q.def.(*types.NameQuestionDefinition)
	if !ok {
		q.wrongType(types.Name)
	}
	return newNameQuestion(q, def)
}

func (q *ApplicantQuestion) CreateNumberQuestion() *NumberQuestion {
	def, ok := q.def.(*types.NumberQuestionDefinition)
	if !ok {
		q.wrongType(types.Number)
	}
	return newNumberQuestion(q, def)
}

func (q *ApplicantQuestion) CreateTextQuestion() *TextQuestion {
	def, ok := q.def.(*types.TextQuestionDefinition)
	if !ok {
		q.wrongType(types.Text)
	}
	return newTextQuestion(q, def)
}

// CreateSingleSelectQuestion accepts Dropdown and RadioButton definitions.
func (q *ApplicantQuestion) CreateSingleSelectQuestion() *SingleSelectQuestion {
	switch def := q.def.(type) {
	case *types.DropdownQuestionDefinition:
		return newSingleSelectQuestion(q, &def.MultiOptionDefinition)
	case *types.RadioButtonQuestionDefinition:
		return newSingleSelectQuestion(q, &def.MultiOptionDefinition)
	}
	q.wrongType(types.Dropdown, types.RadioButton)
	return nil
}

func (q *ApplicantQuestion) CreateMultiSelectQuestion() *MultiSelectQuestion {
	def, ok := q.def.(*types.CheckboxQuestionDefinition)
	if !ok {
		q.wrongType(types.Checkbox)
	}
	return newMultiSelectQuestion(q, def)
}

func (q *ApplicantQuestion) wrongType(want ...types.QuestionType) {
	panic(fmt.Sprintf("question %q is %s, not %v", q.def.Name(), q.def.Type(), want))
}

type presenterVisitor struct {
	q         *ApplicantQuestion
	presenter PresentsErrors
}

func (v *presenterVisitor) VisitAddress(def *types.AddressQuestionDefinition) {
	v.presenter = newAddressQuestion(v.q, def)
}

func (v *presenterVisitor) VisitCheckbox(def *types.CheckboxQuestionDefinition) {
	v.presenter = newMultiSelectQuestion(v.q, def)
}

func (v *presenterVisitor) VisitDropdown(def *types.DropdownQuestionDefinition) {
	v.presenter = newSingleSelectQuestion(v.q, &def.MultiOptionDefinition)
}

func (v *presenterVisitor) VisitFileUpload(def *types.FileUploadQuestionDefinition) {
	v.presenter = newFileUploadQuestion(v.q, def)
}

func (v *presenterVisitor) VisitName(def *types.NameQuestionDefinition) {
	v.presenter = newNameQuestion(v.q, def)
}

func (v *presenterVisitor) VisitNumber(def *types.NumberQuestionDefinition) {
	v.presenter = newNumberQuestion(v.q, def)
}

func (v *presenterVisitor) VisitRadioButton(def *types.RadioButtonQuestionDefinition) {
	v.presenter = newSingleSelectQuestion(v.q, &def.MultiOptionDefinition)
}

func (v *presenterVisitor) VisitText(def *types.TextQuestionDefinition) {
	v.presenter = newTextQuestion(v.q, def)
}
