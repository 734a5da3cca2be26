package account

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
)

// InMemory indexes accounts by id and normalized email.
type InMemory struct {
	mu       sync.RWMutex
	nextID   domain.AccountID
	accounts map[domain.AccountID]models.Account
	byEmail  map[string]domain.AccountID
}

func NewInMemory() *InMemory {
	return &InMemory{
		accounts: make(map[domain.AccountID]models.Account),
		byEmail:  make(map[string]domain.AccountID),
	}
}

func (s *InMemory) FindByID(_ context.Context, accountID domain.AccountID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &a, nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accountID, ok := s.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	a := s.accounts[accountID]
	return &a, nil
}

// Insert assigns the next ID. An email already in use fails with
// sentinel.ErrConflict.
func (s *InMemory) Insert(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := models.NormalizeEmail(a.EmailAddress)
	if _, taken := s.byEmail[email]; taken {
		return fmt.Errorf("insert account: %w", sentinel.ErrConflict)
	}
	s.nextID++
	a.ID = s.nextID
	a.EmailAddress = email
	s.accounts[a.ID] = *a
	s.byEmail[email] = a.ID
	return nil
}

func (s *InMemory) Update(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.accounts[a.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	email := models.NormalizeEmail(a.EmailAddress)
	if owner, taken := s.byEmail[email]; taken && owner != a.ID {
		return fmt.Errorf("update account: %w", sentinel.ErrConflict)
	}
	delete(s.byEmail, stored.EmailAddress)
	a.EmailAddress = email
	s.accounts[a.ID] = *a
	s.byEmail[email] = a.ID
	return nil
}

func (s *InMemory) ListByGroup(_ context.Context, groupID domain.GroupID) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Account
	for _, a := range s.accounts {
		if a.IsMemberOf(groupID) {
			out = append(out, &a)
		}
	}
	slices.SortFunc(out, func(a, b *models.Account) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
