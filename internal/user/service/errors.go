package service

import (
	"fmt"

	"uat/pkg/domain"
	dErrors "uat/pkg/domain-errors"
)

// NoSuchTrustedIntermediaryGroupError reports an unknown group id.
type NoSuchTrustedIntermediaryGroupError struct {
	GroupID domain.GroupID
}

func (e NoSuchTrustedIntermediaryGroupError) Error() string {
	if e.GroupID.IsZero() {
		return "no such trusted intermediary group"
	}
	return fmt.Sprintf("no such trusted intermediary group: %s", e.GroupID)
}

// Is matches any NoSuchTrustedIntermediaryGroupError regardless of id.
func (e NoSuchTrustedIntermediaryGroupError) Is(target error) bool {
	switch target.(type) {
	case NoSuchTrustedIntermediaryGroupError, *NoSuchTrustedIntermediaryGroupError:
		return true
	}
	return false
}

func (e NoSuchTrustedIntermediaryGroupError) DomainCode() dErrors.Code {
	return dErrors.CodeNotFound
}

// NoSuchTrustedIntermediaryError reports an account that does not exist or
// is not a member of the group it was removed from.
type NoSuchTrustedIntermediaryError struct {
	GroupID   domain.GroupID
	AccountID domain.AccountID
}

func (e NoSuchTrustedIntermediaryError) Error() string {
	if e.AccountID.IsZero() {
		return "no such trusted intermediary"
	}
	return fmt.Sprintf("no such trusted intermediary: account %s in group %s", e.AccountID, e.GroupID)
}

func (e NoSuchTrustedIntermediaryError) Is(target error) bool {
	switch target.(type) {
	case NoSuchTrustedIntermediaryError, *NoSuchTrustedIntermediaryError:
		return true
	}
	return false
}

func (e NoSuchTrustedIntermediaryError) DomainCode() dErrors.Code {
	return dErrors.CodeNotFound
}

var (
	ErrNoSuchGroup  = NoSuchTrustedIntermediaryGroupError{}
	ErrNoSuchMember = NoSuchTrustedIntermediaryError{}
)
