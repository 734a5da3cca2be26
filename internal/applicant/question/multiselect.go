package question

import "uat/internal/question/types"

// MultiSelectQuestion is the view for Checkbox questions. Stored ids without
// a matching option are dropped.
type MultiSelectQuestion struct {
	view
	def *types.CheckboxQuestionDefinition
}

func newMultiSelectQuestion(q *ApplicantQuestion, def *types.CheckboxQuestionDefinition) *MultiSelectQuestion {
	return &MultiSelectQuestion{view: view{q: q}, def: def}
}

func (m *MultiSelectQuestion) Options() []types.LocalizedQuestionOption {
	return m.def.LocalizedOptions(m.q.Locale())
}

// SelectedOptionIDs returns the stored ids as written, including stale ones.
func (m *MultiSelectQuestion) SelectedOptionIDs() ([]int64, bool) {
	return m.q.data.ReadLongList(m.def.SelectionPath())
}

// SelectedOptionsValue resolves the selection in stored order, without
// duplicates. ok is false when no stored id matches an option.
func (m *MultiSelectQuestion) SelectedOptionsValue() ([]types.LocalizedQuestionOption, bool) {
	ids, ok := m.SelectedOptionIDs()
	if !ok {
		return nil, false
	}
	locale := m.q.Locale()
	seen := make(map[int64]bool, len(ids))
	var out []types.LocalizedQuestionOption
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if opt, ok := m.def.Option(id); ok {
			out = append(out, opt.Localize(locale))
		}
	}
	return out, len(out) > 0
}

func (m *MultiSelectQuestion) IsAnswered() bool {
	_, ok := m.SelectedOptionsValue()
	return ok
}

func (m *MultiSelectQuestion) QuestionErrors() []ValidationError {
	return m.questionErrors(m.IsAnswered())
}

// TypeSpecificErrors checks the number of valid selections against the
// definition's choice range.
func (m *MultiSelectQuestion) TypeSpecificErrors() []ValidationError {
	selected, ok := m.SelectedOptionsValue()
	if !ok {
		return nil
	}
	n := int64(len(selected))
	r := m.def.ChoiceRange()
	if r.Min != nil && n < *r.Min {
		return []ValidationError{newValidationError(KeyTooFewChoices, *r.Min)}
	}
	if r.Max != nil && n > *r.Max {
		return []ValidationError{newValidationError(KeyTooManyChoices, *r.Max)}
	}
	return nil
}

func (m *MultiSelectQuestion) HasQuestionErrors() bool     { return len(m.QuestionErrors()) > 0 }
func (m *MultiSelectQuestion) HasTypeSpecificErrors() bool { return len(m.TypeSpecificErrors()) > 0 }
