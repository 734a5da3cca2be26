package types

import (
	"strings"
)

//go:generate go tool stringer -type=QuestionType -linecomment

// QuestionType is the declared kind of a question definition.
type QuestionType int

const (
	Unknown     QuestionType = iota // UNKNOWN
	Address                         // ADDRESS
	Checkbox                        // CHECKBOX
	Dropdown                        // DROPDOWN
	FileUpload                      // FILEUPLOAD
	Name                            // NAME
	Number                          // NUMBER
	RadioButton                     // RADIO_BUTTON
	Repeater                        // REPEATER
	Text                            // TEXT
)

// AllQuestionTypes lists every known type, including Repeater, in declaration
// order. Unknown is not listed.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{Address, Checkbox, Dropdown, FileUpload, Name, Number, RadioButton, Repeater, Text}
}

// ParseQuestionType maps a stored type name (case-insensitive) to its
// QuestionType. Unrecognized names yield Unknown and an
// *UnsupportedQuestionTypeError.
func ParseQuestionType(s string) (QuestionType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range AllQuestionTypes() {
		if t.String() == name {
			return t, nil
		}
	}
	return Unknown, &UnsupportedQuestionTypeError{Type: Unknown, Value: s}
}

// IsMultiOption reports whether definitions of this type carry an option list.
func (t QuestionType) IsMultiOption() bool {
	switch t {
	case Checkbox, Dropdown, RadioButton:
		return true
	}
	return false
}
