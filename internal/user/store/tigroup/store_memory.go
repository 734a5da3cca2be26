package tigroup

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
)

type InMemory struct {
	mu     sync.RWMutex
	nextID domain.GroupID
	groups map[domain.GroupID]models.TrustedIntermediaryGroup
}

func NewInMemory() *InMemory {
	return &InMemory{groups: make(map[domain.GroupID]models.TrustedIntermediaryGroup)}
}

// List returns every group ordered by name, then id.
func (s *InMemory) List(_ context.Context) ([]*models.TrustedIntermediaryGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TrustedIntermediaryGroup, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, &g)
	}
	slices.SortFunc(out, func(a, b *models.TrustedIntermediaryGroup) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, groupID domain.GroupID) (*models.TrustedIntermediaryGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &g, nil
}

func (s *InMemory) Insert(_ context.Context, g *models.TrustedIntermediaryGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	g.ID = s.nextID
	s.groups[g.ID] = *g
	return nil
}

func (s *InMemory) Delete(_ context.Context, groupID domain.GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[groupID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.groups, groupID)
	return nil
}
