package types

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"uat/internal/l10n"
	"uat/internal/path"
)

// MultiOptionDefinition is the shared part of question types that choose
// from a fixed option list. Option order is display order.
//
// Constructors accept duplicate option ids; Validate reports them.
type MultiOptionDefinition struct {
	definition
	options []QuestionOption
}

func newMultiOption(cfg Config, options []QuestionOption) MultiOptionDefinition {
	cloned := make([]QuestionOption, 0, len(options))
	for _, o := range options {
		cloned = append(cloned, o.clone())
	}
	return MultiOptionDefinition{definition: newDefinition(cfg), options: cloned}
}

// SelectionPath holds the selected option id, or a list of ids for Checkbox.
func (m *MultiOptionDefinition) SelectionPath() path.Path { return m.cfg.Path.Join("selection") }

func (m *MultiOptionDefinition) Options() []QuestionOption {
	out := make([]QuestionOption, 0, len(m.options))
	for _, o := range m.options {
		out = append(out, o.clone())
	}
	return out
}

// Option returns the first option with id.
func (m *MultiOptionDefinition) Option(id int64) (QuestionOption, bool) {
	for _, o := range m.options {
		if o.ID == id {
			return o.clone(), true
		}
	}
	return QuestionOption{}, false
}

func (m *MultiOptionDefinition) LocalizedOptions(locale language.Tag) []LocalizedQuestionOption {
	out := make([]LocalizedQuestionOption, 0, len(m.options))
	for _, o := range m.options {
		out = append(out, o.Localize(locale))
	}
	return out
}

func (m *MultiOptionDefinition) validateOptions() []error {
	var errs []error
	if len(m.options) == 0 {
		errs = append(errs, invalid("question must have at least one option"))
	}
	seen := make(map[int64]bool, len(m.options))
	for _, o := range m.options {
		id := strconv.FormatInt(o.ID, 10)
		if seen[o.ID] {
			errs = append(errs, invalid("duplicate option id "+id))
		}
		seen[o.ID] = true
		if strings.TrimSpace(o.Text[l10n.DefaultLocale]) == "" {
			errs = append(errs, invalid("option "+id+" missing text for default locale"))
		}
	}
	return errs
}

func (m *MultiOptionDefinition) equalOptions(o *MultiOptionDefinition) bool {
	return m.cfg.equal(o.cfg) && slices.EqualFunc(m.options, o.options, QuestionOption.Equal)
}

// DropdownQuestionDefinition is a single-select rendered as a list box.
type DropdownQuestionDefinition struct {
	MultiOptionDefinition
}

func NewDropdownQuestionDefinition(cfg Config, options []QuestionOption) *DropdownQuestionDefinition {
	return &DropdownQuestionDefinition{MultiOptionDefinition: newMultiOption(cfg, options)}
}

func (q *DropdownQuestionDefinition) Type() QuestionType { return Dropdown }
func (q *DropdownQuestionDefinition) Accept(v Visitor)   { v.VisitDropdown(q) }

func (q *DropdownQuestionDefinition) Validate() []error {
	return append(q.validate(), q.validateOptions()...)
}

func (q *DropdownQuestionDefinition) Equal(other QuestionDefinition) bool {
	o, ok := other.(*DropdownQuestionDefinition)
	return ok && o != nil && q.equalOptions(&o.MultiOptionDefinition)
}

// RadioButtonQuestionDefinition is a single-select rendered as radio buttons.
type RadioButtonQuestionDefinition struct {
	MultiOptionDefinition
}

func NewRadioButtonQuestionDefinition(cfg Config, options []QuestionOption) *RadioButtonQuestionDefinition {
	return &RadioButtonQuestionDefinition{MultiOptionDefinition: newMultiOption(cfg, options)}
}

func (q *RadioButtonQuestionDefinition) Type() QuestionType { return RadioButton }
func (q *RadioButtonQuestionDefinition) Accept(v Visitor)   { v.VisitRadioButton(q) }

func (q *RadioButtonQuestionDefinition) Validate() []error {
	return append(q.validate(), q.validateOptions()...)
}

func (q *RadioButtonQuestionDefinition) Equal(other QuestionDefinition) bool {
	o, ok := other.(*RadioButtonQuestionDefinition)
	return ok && o != nil && q.equalOptions(&o.MultiOptionDefinition)
}

// CheckboxQuestionDefinition is a multi-select. ChoiceRange bounds how many
// options may be selected.
type CheckboxQuestionDefinition struct {
	MultiOptionDefinition
	choiceRange Range
}

func NewCheckboxQuestionDefinition(cfg Config, options []QuestionOption, choiceRange Range) *CheckboxQuestionDefinition {
	return &CheckboxQuestionDefinition{
		MultiOptionDefinition: newMultiOption(cfg, options),
		choiceRange:           choiceRange.clone(),
	}
}

func (q *CheckboxQuestionDefinition) Type() QuestionType { return Checkbox }
func (q *CheckboxQuestionDefinition) Accept(v Visitor)   { v.VisitCheckbox(q) }
func (q *CheckboxQuestionDefinition) ChoiceRange() Range { return q.choiceRange.clone() }

func (q *CheckboxQuestionDefinition) Validate() []error {
	errs := append(q.validate(), q.validateOptions()...)
	errs = append(errs, validateRange(q.choiceRange, "choice count", true)...)
	if q.choiceRange.Min != nil && *q.choiceRange.Min > int64(len(q.options)) {
		errs = append(errs, invalid("choice count minimum exceeds the number of options"))
	}
	return errs
}

func (q *CheckboxQuestionDefinition) Equal(other QuestionDefinition) bool {
	o, ok := other.(*CheckboxQuestionDefinition)
	return ok && o != nil && q.equalOptions(&o.MultiOptionDefinition) && q.choiceRange.Equal(o.choiceRange)
}
