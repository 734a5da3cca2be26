package program

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"uat/internal/l10n"
	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
)

type InMemory struct {
	mu           sync.RWMutex
	nextProgram  domain.ProgramID
	nextApp      domain.ApplicationID
	programs     map[domain.ProgramID]models.ProgramDefinition
	applications map[domain.ApplicationID]models.Application
}

func NewInMemory() *InMemory {
	return &InMemory{
		programs:     make(map[domain.ProgramID]models.ProgramDefinition),
		applications: make(map[domain.ApplicationID]models.Application),
	}
}

func (s *InMemory) FindByID(_ context.Context, programID domain.ProgramID) (*models.ProgramDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.programs[programID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := clone(p)
	return &out, nil
}

func (s *InMemory) ListActive(_ context.Context) ([]models.ProgramDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ProgramDefinition
	for _, p := range s.programs {
		if p.IsActive() {
			out = append(out, clone(p))
		}
	}
	sortPrograms(out)
	return out, nil
}

// ListWithDraftApplication returns each program the applicant has at least
// one draft application for, whatever the program's own stage.
func (s *InMemory) ListWithDraftApplication(_ context.Context, applicantID domain.ApplicantID) ([]models.ProgramDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[domain.ProgramID]bool)
	var out []models.ProgramDefinition
	for _, app := range s.applications {
		if app.ApplicantID != applicantID || !app.IsDraft() || seen[app.ProgramID] {
			continue
		}
		seen[app.ProgramID] = true
		if p, ok := s.programs[app.ProgramID]; ok {
			out = append(out, clone(p))
		}
	}
	sortPrograms(out)
	return out, nil
}

func (s *InMemory) Insert(_ context.Context, p *models.ProgramDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProgram++
	p.ID = s.nextProgram
	s.programs[p.ID] = clone(*p)
	return nil
}

func (s *InMemory) InsertApplication(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.programs[app.ProgramID]; !ok {
		return fmt.Errorf("insert application for program %s: %w", app.ProgramID, sentinel.ErrNotFound)
	}
	s.nextApp++
	app.ID = s.nextApp
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	s.applications[app.ID] = *app
	return nil
}

func clone(p models.ProgramDefinition) models.ProgramDefinition {
	p.LocalizedName = l10n.Clone(p.LocalizedName)
	p.LocalizedDescription = l10n.Clone(p.LocalizedDescription)
	p.QuestionIDs = slices.Clone(p.QuestionIDs)
	return p
}

func sortPrograms(programs []models.ProgramDefinition) {
	slices.SortFunc(programs, func(a, b models.ProgramDefinition) int { return cmp.Compare(a.ID, b.ID) })
}
