package models

import (
	"strings"
	"time"

	"uat/pkg/domain"
	dErrors "uat/pkg/domain-errors"
)

// TrustedIntermediaryGroup is an organization whose member accounts act on
// behalf of applicants.
//
// Invariants:
//   - Name is non-empty
type TrustedIntermediaryGroup struct {
	ID          domain.GroupID `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
}

func NewTrustedIntermediaryGroup(name, description string, now time.Time) (*TrustedIntermediaryGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "trusted intermediary group name cannot be empty")
	}
	return &TrustedIntermediaryGroup{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
	}, nil
}
