package tigroup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"uat/internal/user/models"
	"uat/pkg/platform/sentinel"
)

type GroupStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *GroupStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestGroupStoreSuite(t *testing.T) {
	suite.Run(t, new(GroupStoreSuite))
}

func (s *GroupStoreSuite) insert(name string) *models.TrustedIntermediaryGroup {
	g, err := models.NewTrustedIntermediaryGroup(name, "helps people", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Insert(s.ctx, g))
	return g
}

func (s *GroupStoreSuite) TestInsertAndFind() {
	g := s.insert("Food Bank")
	s.False(g.ID.IsZero())

	found, err := s.store.FindByID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal("Food Bank", found.Name)
	s.Equal("helps people", found.Description)

	_, err = s.store.FindByID(s.ctx, g.ID+1)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *GroupStoreSuite) TestListOrdersByName() {
	s.insert("Zeta")
	alpha := s.insert("Alpha")
	s.insert("Mu")

	groups, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(groups, 3)
	s.Equal(alpha.ID, groups[0].ID)
	s.Equal([]string{"Alpha", "Mu", "Zeta"}, []string{groups[0].Name, groups[1].Name, groups[2].Name})
}

func (s *GroupStoreSuite) TestDelete() {
	g := s.insert("Shelter")
	s.Require().NoError(s.store.Delete(s.ctx, g.ID))

	_, err := s.store.FindByID(s.ctx, g.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, g.ID), sentinel.ErrNotFound)
}
