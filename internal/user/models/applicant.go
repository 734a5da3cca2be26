package models

import (
	"fmt"
	"time"

	"uat/internal/applicant/data"
	"uat/pkg/domain"
)

// Applicant is one benefits profile. Its answers are stored as an opaque
// serialized document and decoded on first access.
//
// An Applicant is not safe for concurrent use.
type Applicant struct {
	ID        domain.ApplicantID
	AccountID domain.AccountID // zero when not linked to an account
	CreatedAt time.Time

	raw  []byte
	data *data.ApplicantData
}

func NewApplicant(now time.Time) *Applicant {
	return &Applicant{CreatedAt: now, data: data.New()}
}

// RestoreApplicant rebuilds a stored applicant. raw is decoded lazily.
func RestoreApplicant(applicantID domain.ApplicantID, accountID domain.AccountID, createdAt time.Time, raw []byte) *Applicant {
	return &Applicant{
		ID:        applicantID,
		AccountID: accountID,
		CreatedAt: createdAt,
		raw:       raw,
	}
}

// ApplicantData decodes the stored document on first call and returns the
// same document afterwards, so edits through it are kept.
func (a *Applicant) ApplicantData() (*data.ApplicantData, error) {
	if a.data != nil {
		return a.data, nil
	}
	d, err := data.Deserialize(a.raw)
	if err != nil {
		return nil, fmt.Errorf("decode applicant %s data: %w", a.ID, err)
	}
	a.data = d
	a.raw = nil
	return a.data, nil
}

func (a *Applicant) SetApplicantData(d *data.ApplicantData) {
	a.data = d
	a.raw = nil
}

func (a *Applicant) SetAccount(accountID domain.AccountID) {
	a.AccountID = accountID
}

func (a *Applicant) HasAccount() bool {
	return !a.AccountID.IsZero()
}

// SerializedData returns the storage form of the answers. An undecoded
// document is returned as stored.
func (a *Applicant) SerializedData() ([]byte, error) {
	if a.data == nil {
		if len(a.raw) == 0 {
			return []byte("{}"), nil
		}
		return append([]byte(nil), a.raw...), nil
	}
	raw, err := a.data.Serialize()
	if err != nil {
		return nil, fmt.Errorf("encode applicant %s data: %w", a.ID, err)
	}
	return raw, nil
}

// Snapshot returns a copy that shares nothing with a. Stores hand out
// snapshots so callers cannot mutate stored state in place.
func (a *Applicant) Snapshot() (*Applicant, error) {
	raw, err := a.SerializedData()
	if err != nil {
		return nil, err
	}
	return RestoreApplicant(a.ID, a.AccountID, a.CreatedAt, raw), nil
}

// IsOlderThan orders applicants by creation time. Equal timestamps fall back
// to the lower ID, so the order is total.
func (a *Applicant) IsOlderThan(other *Applicant) bool {
	if !a.CreatedAt.Equal(other.CreatedAt) {
		return a.CreatedAt.Before(other.CreatedAt)
	}
	return a.ID < other.ID
}
