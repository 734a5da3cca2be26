package models

import (
	"time"

	"golang.org/x/text/language"

	"uat/internal/l10n"
	"uat/pkg/domain"
)

// ProgramDefinition describes a benefits program and the questions it asks.
type ProgramDefinition struct {
	ID                   domain.ProgramID        `json:"id"`
	AdminName            string                  `json:"admin_name"`
	AdminDescription     string                  `json:"admin_description"`
	LocalizedName        map[language.Tag]string `json:"localized_name"`
	LocalizedDescription map[language.Tag]string `json:"localized_description"`
	Stage                domain.LifecycleStage   `json:"stage"`
	QuestionIDs          []domain.QuestionID     `json:"question_ids"`
}

func (p ProgramDefinition) Name(locale language.Tag) string {
	name, _, ok := l10n.Resolve(p.LocalizedName, locale)
	if !ok {
		return p.AdminName
	}
	return name
}

func (p ProgramDefinition) IsActive() bool {
	return p.Stage == domain.LifecycleStageActive
}

// Application links an applicant to a program. A draft application is one
// the applicant has started but not submitted.
type Application struct {
	ID          domain.ApplicationID  `json:"id"`
	ApplicantID domain.ApplicantID    `json:"applicant_id"`
	ProgramID   domain.ProgramID      `json:"program_id"`
	Stage       domain.LifecycleStage `json:"stage"`
	CreatedAt   time.Time             `json:"created_at"`
}

func (a Application) IsDraft() bool {
	return a.Stage == domain.LifecycleStageDraft
}
