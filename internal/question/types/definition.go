// Package types holds the immutable question definitions applicants answer.
//
// Each supported QuestionType has exactly one concrete variant. Code that must
// handle every variant implements Visitor, so adding a variant fails to
// compile until every visitor handles it.
package types

import (
	"maps"
	"strings"

	"golang.org/x/text/language"

	"uat/internal/l10n"
	"uat/internal/path"
	"uat/pkg/domain"
	dErrors "uat/pkg/domain-errors"
)

// Config holds the fields every question type shares.
type Config struct {
	ID           domain.QuestionID
	Name         string
	Path         path.Path
	RepeaterID   *domain.QuestionID
	Description  string
	Stage        domain.LifecycleStage
	QuestionText map[language.Tag]string
	HelpText     map[language.Tag]string
	Required     bool
}

func (c Config) clone() Config {
	out := c
	if c.RepeaterID != nil {
		id := *c.RepeaterID
		out.RepeaterID = &id
	}
	out.QuestionText = l10n.Clone(c.QuestionText)
	out.HelpText = l10n.Clone(c.HelpText)
	return out
}

func (c Config) equal(o Config) bool {
	if c.RepeaterID == nil || o.RepeaterID == nil {
		if c.RepeaterID != o.RepeaterID {
			return false
		}
	} else if *c.RepeaterID != *o.RepeaterID {
		return false
	}
	return c.ID == o.ID &&
		c.Name == o.Name &&
		c.Path.Equal(o.Path) &&
		c.Description == o.Description &&
		c.Stage == o.Stage &&
		c.Required == o.Required &&
		maps.Equal(c.QuestionText, o.QuestionText) &&
		maps.Equal(c.HelpText, o.HelpText)
}

// QuestionDefinition is implemented only by the variants in this package.
type QuestionDefinition interface {
	ID() domain.QuestionID
	Name() string
	Path() path.Path
	RepeaterID() (domain.QuestionID, bool)
	Description() string
	Stage() domain.LifecycleStage
	Required() bool
	Type() QuestionType
	Config() Config

	QuestionText(locale language.Tag) (string, bool)
	QuestionTextOrDefault(locale language.Tag) string
	HelpText(locale language.Tag) (string, bool)
	HelpTextOrDefault(locale language.Tag) string
	SupportedLocales() []language.Tag

	// Validate reports problems with the definition itself, such as a
	// missing default-locale text. A nil result means the definition is
	// publishable.
	Validate() []error
	Accept(v Visitor)
	Equal(other QuestionDefinition) bool

	base() *definition
}

// Visitor has one method per concrete variant.
type Visitor interface {
	VisitAddress(q *AddressQuestionDefinition)
	VisitCheckbox(q *CheckboxQuestionDefinition)
	VisitDropdown(q *DropdownQuestionDefinition)
	VisitFileUpload(q *FileUploadQuestionDefinition)
	VisitName(q *NameQuestionDefinition)
	VisitNumber(q *NumberQuestionDefinition)
	VisitRadioButton(q *RadioButtonQuestionDefinition)
	VisitText(q *TextQuestionDefinition)
}

type definition struct {
	cfg Config
}

func newDefinition(cfg Config) definition {
	return definition{cfg: cfg.clone()}
}

func (d *definition) base() *definition { return d }

func (d *definition) ID() domain.QuestionID        { return d.cfg.ID }
func (d *definition) Name() string                 { return d.cfg.Name }
func (d *definition) Path() path.Path              { return d.cfg.Path }
func (d *definition) Description() string          { return d.cfg.Description }
func (d *definition) Stage() domain.LifecycleStage { return d.cfg.Stage }
func (d *definition) Required() bool               { return d.cfg.Required }

// Config returns a copy; mutating it does not affect the definition.
func (d *definition) Config() Config { return d.cfg.clone() }

func (d *definition) RepeaterID() (domain.QuestionID, bool) {
	if d.cfg.RepeaterID == nil {
		return 0, false
	}
	return *d.cfg.RepeaterID, true
}

// QuestionText returns the text for exactly locale, without fallback.
func (d *definition) QuestionText(locale language.Tag) (string, bool) {
	text, ok := d.cfg.QuestionText[locale]
	return text, ok
}

func (d *definition) QuestionTextOrDefault(locale language.Tag) string {
	text, _, _ := l10n.Resolve(d.cfg.QuestionText, locale)
	return text
}

func (d *definition) HelpText(locale language.Tag) (string, bool) {
	text, ok := d.cfg.HelpText[locale]
	return text, ok
}

func (d *definition) HelpTextOrDefault(locale language.Tag) string {
	text, _, _ := l10n.Resolve(d.cfg.HelpText, locale)
	return text
}

// SupportedLocales lists the locales with question text.
func (d *definition) SupportedLocales() []language.Tag {
	return l10n.Locales(d.cfg.QuestionText)
}

func (d *definition) validate() []error {
	var errs []error
	if strings.TrimSpace(d.cfg.Name) == "" {
		errs = append(errs, invalid("question name cannot be empty"))
	}
	if d.cfg.Path.IsEmpty() {
		errs = append(errs, invalid("question path cannot be empty"))
	}
	if !d.cfg.Stage.IsValid() {
		errs = append(errs, invalid("invalid lifecycle stage: "+d.cfg.Stage.String()))
	}
	if strings.TrimSpace(d.cfg.QuestionText[l10n.DefaultLocale]) == "" {
		errs = append(errs, invalid("question text missing for default locale "+l10n.DefaultLocale.String()))
	}
	return errs
}

func validateRange(r Range, field string, nonNegative bool) []error {
	var errs []error
	if nonNegative && r.Min != nil && *r.Min < 0 {
		errs = append(errs, invalid(field+" minimum cannot be negative"))
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		errs = append(errs, invalid(field+" minimum cannot exceed maximum"))
	}
	return errs
}

func invalid(msg string) error {
	return dErrors.New(dErrors.CodeValidation, msg)
}
