package models

import (
	"strings"

	"uat/pkg/domain"
)

// Account is an authenticated identity. It may own several applicants and
// belong to at most one trusted intermediary group.
type Account struct {
	ID              domain.AccountID `json:"id"`
	EmailAddress    string           `json:"email_address"`
	MemberOfGroupID domain.GroupID   `json:"member_of_group_id,omitempty"` // zero when not a member
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewAccount(email string) *Account {
	return &Account{EmailAddress: NormalizeEmail(email)}
}

func (a *Account) IsTrustedIntermediary() bool {
	return !a.MemberOfGroupID.IsZero()
}

func (a *Account) IsMemberOf(groupID domain.GroupID) bool {
	return !groupID.IsZero() && a.MemberOfGroupID == groupID
}

func (a *Account) JoinGroup(groupID domain.GroupID) {
	a.MemberOfGroupID = groupID
}

func (a *Account) LeaveGroup() {
	a.MemberOfGroupID = 0
}
