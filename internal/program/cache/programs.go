package cache

import (
	"context"
	"log/slog"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/circuit"
)

// Store is the program store being cached.
type Store interface {
	ListActive(ctx context.Context) ([]models.ProgramDefinition, error)
	ListWithDraftApplication(ctx context.Context, applicantID domain.ApplicantID) ([]models.ProgramDefinition, error)
	Insert(ctx context.Context, p *models.ProgramDefinition) error
	InsertApplication(ctx context.Context, app *models.Application) error
}

// Recorder counts cache lookups by result.
type Recorder interface {
	IncrementCacheResult(result string)
}

const (
	resultHit    = "hit"
	resultMiss   = "miss"
	resultError  = "error"
	resultBypass = "bypass"
)

// Programs serves ListActive from a Backend and passes everything else to
// the store. Backend failures are logged and fall through to the store.
type Programs struct {
	store    Store
	backend  Backend
	logger   *slog.Logger
	recorder Recorder
	breaker  *circuit.Breaker
}

type Option func(*Programs)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Programs) {
		p.logger = logger
	}
}

func WithRecorder(r Recorder) Option {
	return func(p *Programs) {
		p.recorder = r
	}
}

// WithBreaker skips the backend while b is open, so a failing cache costs
// one probe per cooldown instead of one timeout per lookup.
func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Programs) {
		p.breaker = b
	}
}

func NewPrograms(store Store, backend Backend, opts ...Option) *Programs {
	p := &Programs{store: store, backend: backend}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Programs) ListActive(ctx context.Context) ([]models.ProgramDefinition, error) {
	if !p.allow() {
		p.record(resultBypass)
		return p.store.ListActive(ctx)
	}

	cached, ok, err := p.backend.Get(ctx)
	p.observe(ctx, err)
	switch {
	case err != nil:
		p.record(resultError)
		p.warn(ctx, "active program cache read failed", err)
	case ok:
		p.record(resultHit)
		return cached, nil
	default:
		p.record(resultMiss)
	}

	programs, err := p.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.backend.Set(ctx, programs); err != nil {
		p.observe(ctx, err)
		p.warn(ctx, "active program cache write failed", err)
	}
	return programs, nil
}

func (p *Programs) ListWithDraftApplication(ctx context.Context, applicantID domain.ApplicantID) ([]models.ProgramDefinition, error) {
	return p.store.ListWithDraftApplication(ctx, applicantID)
}

func (p *Programs) Insert(ctx context.Context, program *models.ProgramDefinition) error {
	if err := p.store.Insert(ctx, program); err != nil {
		return err
	}
	if err := p.backend.Invalidate(ctx); err != nil {
		p.warn(ctx, "active program cache invalidation failed", err)
	}
	return nil
}

func (p *Programs) InsertApplication(ctx context.Context, app *models.Application) error {
	return p.store.InsertApplication(ctx, app)
}

func (p *Programs) allow() bool {
	return p.breaker == nil || p.breaker.Allow()
}

func (p *Programs) observe(ctx context.Context, err error) {
	if p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if _, change := p.breaker.RecordFailure(); change.Opened {
		p.warn(ctx, "active program cache disabled after repeated failures", err)
	}
}

func (p *Programs) record(result string) {
	if p.recorder != nil {
		p.recorder.IncrementCacheResult(result)
	}
}

func (p *Programs) warn(ctx context.Context, msg string, err error) {
	if p.logger != nil {
		p.logger.WarnContext(ctx, msg, "error", err)
	}
}
