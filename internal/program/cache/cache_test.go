package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"

	"uat/internal/user/models"
	programstore "uat/internal/user/store/program"
	"uat/pkg/domain"
	"uat/pkg/platform/circuit"
)

type failingBackend struct {
	err error
}

func (b failingBackend) Get(context.Context) ([]models.ProgramDefinition, bool, error) {
	return nil, false, b.err
}
func (b failingBackend) Set(context.Context, []models.ProgramDefinition) error { return b.err }
func (b failingBackend) Invalidate(context.Context) error                      { return b.err }

type countingRecorder map[string]int

func (r countingRecorder) IncrementCacheResult(result string) { r[result]++ }

type ProgramCacheSuite struct {
	suite.Suite
	store    *programstore.InMemory
	recorder countingRecorder
	ctx      context.Context
}

func TestProgramCacheSuite(t *testing.T) {
	suite.Run(t, new(ProgramCacheSuite))
}

func (s *ProgramCacheSuite) SetupTest() {
	s.store = programstore.NewInMemory()
	s.recorder = countingRecorder{}
	s.ctx = context.Background()
}

func (s *ProgramCacheSuite) programs(backend Backend) *Programs {
	return NewPrograms(s.store, backend,
		WithRecorder(s.recorder),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func activeProgram(name string) *models.ProgramDefinition {
	return &models.ProgramDefinition{
		AdminName:     name,
		LocalizedName: map[language.Tag]string{language.AmericanEnglish: name, language.Spanish: name + " (es)"},
		Stage:         domain.LifecycleStageActive,
		QuestionIDs:   []domain.QuestionID{3, 1},
	}
}

func (s *ProgramCacheSuite) TestLocalBackend() {
	local := NewLocal(time.Minute)

	_, ok, err := local.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(local.Set(s.ctx, []models.ProgramDefinition{*activeProgram("food")}))
	cached, ok, err := local.Get(s.ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Len(cached, 1)
	s.Equal("food (es)", cached[0].Name(language.Spanish))
	s.Equal([]domain.QuestionID{3, 1}, cached[0].QuestionIDs)

	cached[0].LocalizedName[language.Spanish] = "changed"
	again, _, err := local.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal("food (es)", again[0].Name(language.Spanish))

	s.Require().NoError(local.Invalidate(s.ctx))
	_, ok, err = local.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ProgramCacheSuite) TestLocalBackendExpires() {
	local := NewLocal(20 * time.Millisecond)
	s.Require().NoError(local.Set(s.ctx, nil))
	s.Eventually(func() bool {
		_, ok, err := local.Get(s.ctx)
		return err == nil && !ok
	}, time.Second, 10*time.Millisecond)
}

func (s *ProgramCacheSuite) TestListActiveIsCached() {
	programs := s.programs(NewLocal(time.Minute))
	s.Require().NoError(programs.Insert(s.ctx, activeProgram("food")))

	first, err := programs.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Len(first, 1)

	// A write that bypasses the decorator is not seen until invalidation.
	s.Require().NoError(s.store.Insert(s.ctx, activeProgram("rent")))
	second, err := programs.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Len(second, 1)
	s.Equal(map[string]int{resultMiss: 1, resultHit: 1}, map[string]int(s.recorder))

	s.Require().NoError(programs.Insert(s.ctx, activeProgram("transit")))
	third, err := programs.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Len(third, 3)
	s.Equal(2, s.recorder[resultMiss])
}

func (s *ProgramCacheSuite) TestBackendFailureFallsBackToStore() {
	programs := s.programs(failingBackend{err: errors.New("redis down")})
	s.Require().NoError(programs.Insert(s.ctx, activeProgram("food")))

	active, err := programs.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Len(active, 1)
	s.Equal(1, s.recorder[resultError])
}

func (s *ProgramCacheSuite) TestBreakerBypassesFailingBackend() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("program-cache",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	programs := NewPrograms(s.store, failingBackend{err: errors.New("redis down")},
		WithRecorder(s.recorder),
		WithBreaker(breaker),
	)
	s.Require().NoError(s.store.Insert(s.ctx, activeProgram("food")))

	// the failed read and the failed write both count
	_, err := programs.ListActive(s.ctx)
	s.Require().NoError(err)
	s.True(breaker.IsOpen())

	active, err := programs.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Len(active, 1)
	s.Equal(1, s.recorder[resultError])
	s.Equal(1, s.recorder[resultBypass])

	now = now.Add(time.Minute)
	_, err = programs.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, s.recorder[resultError])
	s.True(breaker.IsOpen())
}

func (s *ProgramCacheSuite) TestDraftListingPassesThrough() {
	programs := s.programs(NewLocal(time.Minute))
	p := &models.ProgramDefinition{AdminName: "drafty", Stage: domain.LifecycleStageDraft}
	s.Require().NoError(programs.Insert(s.ctx, p))
	s.Require().NoError(programs.InsertApplication(s.ctx, &models.Application{
		ApplicantID: 1,
		ProgramID:   p.ID,
		Stage:       domain.LifecycleStageDraft,
	}))

	drafts, err := programs.ListWithDraftApplication(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(drafts, 1)
	s.Equal(p.ID, drafts[0].ID)
	s.Empty(s.recorder)
}
