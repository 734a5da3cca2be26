package applicant

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
)

// InMemory keeps serialized snapshots, so callers never share a document
// with the store.
type InMemory struct {
	mu         sync.RWMutex
	nextID     domain.ApplicantID
	applicants map[domain.ApplicantID]*models.Applicant
}

func NewInMemory() *InMemory {
	return &InMemory{applicants: make(map[domain.ApplicantID]*models.Applicant)}
}

func (s *InMemory) List(_ context.Context) ([]*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(*models.Applicant) bool { return true })
}

func (s *InMemory) ListByAccount(_ context.Context, accountID domain.AccountID) ([]*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(a *models.Applicant) bool { return a.AccountID == accountID })
}

func (s *InMemory) FindByID(_ context.Context, applicantID domain.ApplicantID) (*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.applicants[applicantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return stored.Snapshot()
}

// Insert assigns the next ID when a.ID is zero and stamps CreatedAt when unset.
func (s *InMemory) Insert(_ context.Context, a *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID.IsZero() {
		s.nextID++
		a.ID = s.nextID
	} else if _, exists := s.applicants[a.ID]; exists {
		return fmt.Errorf("insert applicant %s: %w", a.ID, sentinel.ErrConflict)
	} else if a.ID > s.nextID {
		s.nextID = a.ID
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	snap, err := a.Snapshot()
	if err != nil {
		return fmt.Errorf("insert applicant: %w", err)
	}
	s.applicants[a.ID] = snap
	return nil
}

func (s *InMemory) Update(_ context.Context, a *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.applicants[a.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	snap, err := a.Snapshot()
	if err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	snap.CreatedAt = stored.CreatedAt
	s.applicants[a.ID] = snap
	return nil
}

func (s *InMemory) Delete(_ context.Context, applicantID domain.ApplicantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applicants[applicantID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.applicants, applicantID)
	return nil
}

func (s *InMemory) collect(keep func(*models.Applicant) bool) ([]*models.Applicant, error) {
	out := make([]*models.Applicant, 0, len(s.applicants))
	for _, stored := range s.applicants {
		if !keep(stored) {
			continue
		}
		snap, err := stored.Snapshot()
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	slices.SortFunc(out, func(a, b *models.Applicant) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
