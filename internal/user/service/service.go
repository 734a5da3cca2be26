// Package service is the user repository: applicant lookups, program
// listing, applicant merges and trusted intermediary group management.
//
// Applicant-facing reads and writes run on an executor pool and return
// futures; trusted intermediary management is synchronous.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"uat/internal/audit"
	"uat/internal/user/metrics"
	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/executor"
	txcontext "uat/pkg/platform/tx"
	"uat/pkg/requestcontext"
)

var tracer = otel.Tracer("uat/internal/user/service")

type ApplicantStore interface {
	List(ctx context.Context) ([]*models.Applicant, error)
	ListByAccount(ctx context.Context, accountID domain.AccountID) ([]*models.Applicant, error)
	FindByID(ctx context.Context, applicantID domain.ApplicantID) (*models.Applicant, error)
	Insert(ctx context.Context, a *models.Applicant) error
	Update(ctx context.Context, a *models.Applicant) error
}

type AccountStore interface {
	FindByID(ctx context.Context, accountID domain.AccountID) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Insert(ctx context.Context, a *models.Account) error
	Update(ctx context.Context, a *models.Account) error
	ListByGroup(ctx context.Context, groupID domain.GroupID) ([]*models.Account, error)
}

type ProgramStore interface {
	ListActive(ctx context.Context) ([]models.ProgramDefinition, error)
	ListWithDraftApplication(ctx context.Context, applicantID domain.ApplicantID) ([]models.ProgramDefinition, error)
}

type GroupStore interface {
	List(ctx context.Context) ([]*models.TrustedIntermediaryGroup, error)
	FindByID(ctx context.Context, groupID domain.GroupID) (*models.TrustedIntermediaryGroup, error)
	Insert(ctx context.Context, g *models.TrustedIntermediaryGroup) error
	Delete(ctx context.Context, groupID domain.GroupID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Transactor scopes multi-statement trusted intermediary changes.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	applicants     ApplicantStore
	accounts       AccountStore
	programs       ProgramStore
	groups         GroupStore
	pool           *executor.Pool
	tx             Transactor
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	now            func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithClock overrides time.Now for group and applicant creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithTransactor sets the transaction boundary for group deletion and
// membership changes. Without it those steps are serialized in process.
func WithTransactor(tx Transactor) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func New(applicants ApplicantStore, accounts AccountStore, programs ProgramStore, groups GroupStore, pool *executor.Pool, opts ...Option) (*Service, error) {
	switch {
	case applicants == nil:
		return nil, errors.New("applicant store is required")
	case accounts == nil:
		return nil, errors.New("account store is required")
	case programs == nil:
		return nil, errors.New("program store is required")
	case groups == nil:
		return nil, errors.New("group store is required")
	case pool == nil:
		return nil, errors.New("executor pool is required")
	}
	s := &Service{
		applicants: applicants,
		accounts:   accounts,
		programs:   programs,
		groups:     groups,
		pool:       pool,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = txcontext.NewLocalTransactor()
	}
	return s, nil
}

// emit publishes an audit event. Publishing failures are logged and never
// fail the operation that produced the event.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	event.Actor = requestcontext.Actor(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"log_type", "audit",
			"actor", event.Actor,
			"request_id", event.RequestID,
			"account_id", event.AccountID,
			"group_id", event.GroupID,
			"applicant_ids", event.ApplicantIDs,
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to publish audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

func (s *Service) logError(ctx context.Context, msg string, err error, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.ErrorContext(ctx, msg, append(args, "error", err)...)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
