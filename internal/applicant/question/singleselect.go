package question

import "uat/internal/question/types"

// SingleSelectQuestion is the view for Dropdown and RadioButton questions.
//
// A stored id that matches no current option (the option was removed after
// the applicant answered) reads as no selection. It is not a type-specific
// error.
type SingleSelectQuestion struct {
	view
	def *types.MultiOptionDefinition
}

func newSingleSelectQuestion(q *ApplicantQuestion, def *types.MultiOptionDefinition) *SingleSelectQuestion {
	return &SingleSelectQuestion{view: view{q: q}, def: def}
}

// Options are resolved in the applicant's preferred locale.
func (s *SingleSelectQuestion) Options() []types.LocalizedQuestionOption {
	return s.def.LocalizedOptions(s.q.Locale())
}

// SelectedOptionID returns the stored id, whether or not it is still an option.
func (s *SingleSelectQuestion) SelectedOptionID() (int64, bool) {
	return s.q.data.ReadLong(s.def.SelectionPath())
}

func (s *SingleSelectQuestion) SelectedOptionValue() (types.LocalizedQuestionOption, bool) {
	id, ok := s.SelectedOptionID()
	if !ok {
		return types.LocalizedQuestionOption{}, false
	}
	opt, ok := s.def.Option(id)
	if !ok {
		return types.LocalizedQuestionOption{}, false
	}
	return opt.Localize(s.q.Locale()), true
}

func (s *SingleSelectQuestion) IsAnswered() bool {
	_, ok := s.SelectedOptionValue()
	return ok
}

func (s *SingleSelectQuestion) QuestionErrors() []ValidationError {
	return s.questionErrors(s.IsAnswered())
}

func (s *SingleSelectQuestion) TypeSpecificErrors() []ValidationError { return nil }

func (s *SingleSelectQuestion) HasQuestionErrors() bool     { return len(s.QuestionErrors()) > 0 }
func (s *SingleSelectQuestion) HasTypeSpecificErrors() bool { return false }
