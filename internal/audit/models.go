package audit

import (
	"time"

	"github.com/google/uuid"

	"uat/pkg/domain"
)

// Action names an audited operation.
type Action string

const (
	ActionApplicantsMerged Action = "applicants_merged"
	ActionGroupCreated     Action = "ti_group_created"
	ActionGroupDeleted     Action = "ti_group_deleted"
	ActionMemberAdded      Action = "ti_member_added"
	ActionMemberRemoved    Action = "ti_member_removed"
)

// Event records an administrative change. Fields that do not apply to an
// action stay zero and are omitted from the JSON form.
type Event struct {
	ID           uuid.UUID            `json:"id"`
	Action       Action               `json:"action"`
	Timestamp    time.Time            `json:"timestamp"`
	AccountID    domain.AccountID     `json:"account_id,omitempty"`
	ApplicantIDs []domain.ApplicantID `json:"applicant_ids,omitempty"`
	GroupID      domain.GroupID       `json:"group_id,omitempty"`
	Detail       string               `json:"detail,omitempty"`
	Actor        string               `json:"actor,omitempty"`
	RequestID    string               `json:"request_id,omitempty"`
}

// stamp fills the ID and Timestamp when the emitter left them unset.
func (e Event) stamp(now time.Time) Event {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	return e
}
