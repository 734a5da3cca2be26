package types

import (
	"fmt"

	dErrors "uat/pkg/domain-errors"
)

// UnsupportedQuestionTypeError is returned when a definition is requested for
// a type that has no concrete variant (Unknown, Repeater, or an unrecognized
// stored name).
type UnsupportedQuestionTypeError struct {
	Type  QuestionType
	Value string // raw name when parsing failed
}

func (e *UnsupportedQuestionTypeError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("unsupported question type %q", e.Value)
	}
	return "unsupported question type " + e.Type.String()
}

func (e *UnsupportedQuestionTypeError) DomainCode() dErrors.Code {
	return dErrors.CodeUnsupported
}
