package domain

import dErrors "uat/pkg/domain-errors"

// LifecycleStage is the publication state of a program, question or
// application.
// Invariant: the value must be one of the supported stages.
//
// Usage: construct via ParseLifecycleStage at trust boundaries; direct
// casting bypasses validation.
type LifecycleStage string

const (
	LifecycleStageDraft    LifecycleStage = "draft"
	LifecycleStageActive   LifecycleStage = "active"
	LifecycleStageObsolete LifecycleStage = "obsolete"
)

var validLifecycleStages = map[LifecycleStage]bool{
	LifecycleStageDraft:    true,
	LifecycleStageActive:   true,
	LifecycleStageObsolete: true,
}

// ParseLifecycleStage constructs a LifecycleStage from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseLifecycleStage(s string) (LifecycleStage, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "lifecycle stage cannot be empty")
	}
	stage := LifecycleStage(s)
	if !stage.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid lifecycle stage: "+s)
	}
	return stage, nil
}

func (s LifecycleStage) IsValid() bool {
	return validLifecycleStages[s]
}

func (s LifecycleStage) String() string {
	return string(s)
}
