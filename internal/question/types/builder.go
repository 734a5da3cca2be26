package types

import (
	"golang.org/x/text/language"

	"uat/internal/l10n"
	"uat/internal/path"
	"uat/pkg/domain"
)

// Builder assembles a QuestionDefinition. Setters return the builder so calls
// chain; Build may be called repeatedly.
//
// The range set with SetRange applies to the answer value for Number, the
// answer length for Text and the number of selections for Checkbox. Other
// types ignore it.
type Builder struct {
	typ     QuestionType
	cfg     Config
	options []QuestionOption
	bounds  Range
}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuilderFrom starts a builder holding every field of def.
func BuilderFrom(def QuestionDefinition) *Builder {
	b := &Builder{typ: def.Type(), cfg: def.Config()}
	switch q := def.(type) {
	case *NumberQuestionDefinition:
		b.bounds = q.ValueRange()
	case *TextQuestionDefinition:
		b.bounds = q.LengthRange()
	case *CheckboxQuestionDefinition:
		b.options = q.Options()
		b.bounds = q.ChoiceRange()
	case *DropdownQuestionDefinition:
		b.options = q.Options()
	case *RadioButtonQuestionDefinition:
		b.options = q.Options()
	}
	return b
}

func (b *Builder) SetType(t QuestionType) *Builder     { b.typ = t; return b }
func (b *Builder) SetID(id domain.QuestionID) *Builder { b.cfg.ID = id; return b }
func (b *Builder) SetName(name string) *Builder        { b.cfg.Name = name; return b }
func (b *Builder) SetPath(p path.Path) *Builder        { b.cfg.Path = p; return b }
func (b *Builder) SetDescription(desc string) *Builder { b.cfg.Description = desc; return b }
func (b *Builder) SetRequired(required bool) *Builder  { b.cfg.Required = required; return b }
func (b *Builder) SetRange(r Range) *Builder           { b.bounds = r.clone(); return b }

func (b *Builder) SetStage(stage domain.LifecycleStage) *Builder {
	b.cfg.Stage = stage
	return b
}

// SetRepeaterID marks the question as nested under a repeater. Zero clears it.
func (b *Builder) SetRepeaterID(id domain.QuestionID) *Builder {
	if id == 0 {
		b.cfg.RepeaterID = nil
		return b
	}
	b.cfg.RepeaterID = &id
	return b
}

func (b *Builder) SetQuestionText(texts map[language.Tag]string) *Builder {
	b.cfg.QuestionText = l10n.Clone(texts)
	return b
}

func (b *Builder) AddQuestionText(locale language.Tag, text string) *Builder {
	if b.cfg.QuestionText == nil {
		b.cfg.QuestionText = make(map[language.Tag]string)
	}
	b.cfg.QuestionText[locale] = text
	return b
}

func (b *Builder) SetHelpText(texts map[language.Tag]string) *Builder {
	b.cfg.HelpText = l10n.Clone(texts)
	return b
}

func (b *Builder) AddHelpText(locale language.Tag, text string) *Builder {
	if b.cfg.HelpText == nil {
		b.cfg.HelpText = make(map[language.Tag]string)
	}
	b.cfg.HelpText[locale] = text
	return b
}

func (b *Builder) SetOptions(options []QuestionOption) *Builder {
	b.options = make([]QuestionOption, 0, len(options))
	for _, o := range options {
		b.options = append(b.options, o.clone())
	}
	return b
}

func (b *Builder) AddOption(option QuestionOption) *Builder {
	b.options = append(b.options, option.clone())
	return b
}

// Build returns the variant for the builder's type. Unknown and Repeater have
// no variant and fail with *UnsupportedQuestionTypeError.
func (b *Builder) Build() (QuestionDefinition, error) {
	switch b.typ {
	case Address:
		return NewAddressQuestionDefinition(b.cfg), nil
	case Checkbox:
		return NewCheckboxQuestionDefinition(b.cfg, b.options, b.bounds), nil
	case Dropdown:
		return NewDropdownQuestionDefinition(b.cfg, b.options), nil
	case FileUpload:
		return NewFileUploadQuestionDefinition(b.cfg), nil
	case Name:
		return NewNameQuestionDefinition(b.cfg), nil
	case Number:
		return NewNumberQuestionDefinition(b.cfg, b.bounds), nil
	case RadioButton:
		return NewRadioButtonQuestionDefinition(b.cfg, b.options), nil
	case Text:
		return NewTextQuestionDefinition(b.cfg, b.bounds), nil
	default:
		return nil, &UnsupportedQuestionTypeError{Type: b.typ}
	}
}

// Sample returns a builder with placeholder values for t. Every supported
// type built from it passes Validate.
func Sample(t QuestionType) *Builder {
	b := NewBuilder().
		SetType(t).
		SetID(123).
		SetName("my name").
		SetPath(path.Create("applicant.my.path.name")).
		SetDescription("description").
		SetStage(domain.LifecycleStageActive).
		AddQuestionText(l10n.DefaultLocale, "question?").
		AddHelpText(l10n.DefaultLocale, "help text")
	if t.IsMultiOption() {
		b.AddOption(NewQuestionOption(1, map[language.Tag]string{l10n.DefaultLocale: "option 1"}))
		b.AddOption(NewQuestionOption(2, map[language.Tag]string{l10n.DefaultLocale: "option 2"}))
	}
	return b
}
