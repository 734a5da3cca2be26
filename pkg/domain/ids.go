package domain

import (
	"strconv"
	"strings"

	dErrors "uat/pkg/domain-errors"
)

// Typed numeric identifiers. Records are keyed by database sequences, so IDs
// are positive int64 values; zero means "not yet persisted".
type (
	AccountID     int64
	ApplicantID   int64
	ProgramID     int64
	ApplicationID int64
	GroupID       int64
	QuestionID    int64
)

func (id AccountID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id ApplicantID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id ProgramID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id ApplicationID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id GroupID) String() string       { return strconv.FormatInt(int64(id), 10) }
func (id QuestionID) String() string    { return strconv.FormatInt(int64(id), 10) }

func (id AccountID) IsZero() bool   { return id == 0 }
func (id ApplicantID) IsZero() bool { return id == 0 }
func (id GroupID) IsZero() bool     { return id == 0 }

func ParseAccountID(s string) (AccountID, error) {
	v, err := parseID(s, "account")
	return AccountID(v), err
}

func ParseApplicantID(s string) (ApplicantID, error) {
	v, err := parseID(s, "applicant")
	return ApplicantID(v), err
}

func ParseProgramID(s string) (ProgramID, error) {
	v, err := parseID(s, "program")
	return ProgramID(v), err
}

func ParseGroupID(s string) (GroupID, error) {
	v, err := parseID(s, "trusted intermediary group")
	return GroupID(v), err
}

func ParseQuestionID(s string) (QuestionID, error) {
	v, err := parseID(s, "question")
	return QuestionID(v), err
}

// parseID accepts only a plain positive base-10 integer; signs, whitespace
// and leading zeros are rejected so every ID has one textual form.
func parseID(s, kind string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	if len(s) > 19 || strings.TrimLeft(s, "0123456789") != "" || s[0] == '0' {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	return v, nil
}
