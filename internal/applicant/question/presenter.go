package question

import "strconv"

// Message keys for ValidationError. Renderers translate them.
const (
	KeyRequired          = "validation.is_required"
	KeyStreetRequired    = "validation.street_required"
	KeyCityRequired      = "validation.city_required"
	KeyZipRequired       = "validation.zip_required"
	KeyFirstNameRequired = "validation.first_name_required"
	KeyLastNameRequired  = "validation.last_name_required"
	KeyNumberInvalid     = "validation.number_invalid"
	KeyNumberTooSmall    = "validation.number_too_small"
	KeyNumberTooLarge    = "validation.number_too_large"
	KeyTextTooShort      = "validation.text_too_short"
	KeyTextTooLong       = "validation.text_too_long"
	KeyTooFewChoices     = "validation.too_few_choices"
	KeyTooManyChoices    = "validation.too_many_choices"
)

// ValidationError is a user-facing problem with an answer. It is a value
// for display, not a Go error.
type ValidationError struct {
	Key  string
	Args []string
}

func newValidationError(key string, args ...int64) ValidationError {
	v := ValidationError{Key: key}
	for _, a := range args {
		v.Args = append(v.Args, strconv.FormatInt(a, 10))
	}
	return v
}

// PresentsErrors is implemented by every typed view.
//
// Question errors apply to any type (a required question left blank).
// Type-specific errors describe a malformed answer and are only reported once
// the question is answered.
type PresentsErrors interface {
	HasQuestionErrors() bool
	HasTypeSpecificErrors() bool
	QuestionErrors() []ValidationError
	TypeSpecificErrors() []ValidationError
	IsAnswered() bool
}

// view carries what every typed view shares. Embedders supply isAnswered and
// typeSpecificErrors.
type view struct {
	q *ApplicantQuestion
}

func (v view) ApplicantQuestion() *ApplicantQuestion { return v.q }

func (v view) questionErrors(answered bool) []ValidationError {
	if v.q.def.Required() && !answered {
		return []ValidationError{{Key: KeyRequired}}
	}
	return nil
}
