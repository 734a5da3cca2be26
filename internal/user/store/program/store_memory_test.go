package program

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
)

type ProgramStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ProgramStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestProgramStoreSuite(t *testing.T) {
	suite.Run(t, new(ProgramStoreSuite))
}

func (s *ProgramStoreSuite) insert(name string, stage domain.LifecycleStage) *models.ProgramDefinition {
	p := &models.ProgramDefinition{
		AdminName:     name,
		LocalizedName: map[language.Tag]string{language.AmericanEnglish: name},
		Stage:         stage,
		QuestionIDs:   []domain.QuestionID{1, 2},
	}
	s.Require().NoError(s.store.Insert(s.ctx, p))
	return p
}

func (s *ProgramStoreSuite) draft(applicantID domain.ApplicantID, p *models.ProgramDefinition, stage domain.LifecycleStage) {
	app := &models.Application{ApplicantID: applicantID, ProgramID: p.ID, Stage: stage}
	s.Require().NoError(s.store.InsertApplication(s.ctx, app))
	s.False(app.CreatedAt.IsZero())
}

func (s *ProgramStoreSuite) TestListActive() {
	food := s.insert("food", domain.LifecycleStageActive)
	s.insert("housing", domain.LifecycleStageDraft)
	transit := s.insert("transit", domain.LifecycleStageActive)
	s.insert("legacy", domain.LifecycleStageObsolete)

	active, err := s.store.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(active, 2)
	s.Equal(food.ID, active[0].ID)
	s.Equal(transit.ID, active[1].ID)
}

func (s *ProgramStoreSuite) TestListWithDraftApplication() {
	active := s.insert("active", domain.LifecycleStageActive)
	drafted := s.insert("drafted", domain.LifecycleStageDraft)
	submitted := s.insert("submitted", domain.LifecycleStageActive)

	s.draft(1, drafted, domain.LifecycleStageDraft)
	s.draft(1, drafted, domain.LifecycleStageDraft)
	s.draft(1, active, domain.LifecycleStageDraft)
	s.draft(1, submitted, domain.LifecycleStageActive)
	s.draft(2, submitted, domain.LifecycleStageDraft)

	s.Run("one entry per program with a draft", func() {
		programs, err := s.store.ListWithDraftApplication(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Len(programs, 2)
		s.Equal(active.ID, programs[0].ID)
		s.Equal(drafted.ID, programs[1].ID)
	})

	s.Run("other applicants are not visible", func() {
		programs, err := s.store.ListWithDraftApplication(s.ctx, 2)
		s.Require().NoError(err)
		s.Require().Len(programs, 1)
		s.Equal(submitted.ID, programs[0].ID)
	})

	s.Run("no drafts yields empty", func() {
		programs, err := s.store.ListWithDraftApplication(s.ctx, 3)
		s.Require().NoError(err)
		s.Empty(programs)
	})
}

func (s *ProgramStoreSuite) TestReadsAreCopies() {
	p := s.insert("food", domain.LifecycleStageActive)
	found, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	found.LocalizedName[language.AmericanEnglish] = "changed"
	found.QuestionIDs[0] = 99

	again, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("food", again.Name(language.AmericanEnglish))
	s.Equal([]domain.QuestionID{1, 2}, again.QuestionIDs)
}

func (s *ProgramStoreSuite) TestUnknownProgram() {
	_, err := s.store.FindByID(s.ctx, 42)
	s.ErrorIs(err, sentinel.ErrNotFound)

	err = s.store.InsertApplication(s.ctx, &models.Application{ApplicantID: 1, ProgramID: 42})
	s.ErrorIs(err, sentinel.ErrNotFound)
}
