package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/executor"
	"uat/pkg/platform/sentinel"
)

// ListApplicants resolves to every stored applicant.
func (s *Service) ListApplicants(ctx context.Context) *executor.Future[[]*models.Applicant] {
	return executor.Submit(ctx, s.pool, func(ctx context.Context) ([]*models.Applicant, error) {
		applicants, err := s.applicants.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list applicants: %w", err)
		}
		return applicants, nil
	})
}

// LookupApplicant resolves to the applicant, or to nil when none has that id.
func (s *Service) LookupApplicant(ctx context.Context, applicantID domain.ApplicantID) *executor.Future[*models.Applicant] {
	return executor.Submit(ctx, s.pool, func(ctx context.Context) (*models.Applicant, error) {
		return s.LookupApplicantSync(ctx, applicantID)
	})
}

// LookupApplicantSync is LookupApplicant on the caller's goroutine.
func (s *Service) LookupApplicantSync(ctx context.Context, applicantID domain.ApplicantID) (*models.Applicant, error) {
	a, err := s.applicants.FindByID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup applicant %s: %w", applicantID, err)
	}
	return a, nil
}

// LookupApplicantByEmail resolves to the most recently created applicant of
// the account with that email, or to nil when there is no such account or it
// has no applicants.
func (s *Service) LookupApplicantByEmail(ctx context.Context, email string) *executor.Future[*models.Applicant] {
	return executor.Submit(ctx, s.pool, func(ctx context.Context) (*models.Applicant, error) {
		account, err := s.LookupAccount(ctx, email)
		if err != nil || account == nil {
			return nil, err
		}
		applicants, err := s.applicants.ListByAccount(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("list applicants of account %s: %w", account.ID, err)
		}
		var newest *models.Applicant
		for _, a := range applicants {
			if newest == nil || newest.IsOlderThan(a) {
				newest = a
			}
		}
		return newest, nil
	})
}

// LookupAccount returns the account with the given email, or nil when the
// email is blank or unregistered.
func (s *Service) LookupAccount(ctx context.Context, email string) (*models.Account, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	return account, nil
}

// InsertApplicant stores a new applicant and resolves to it with its
// assigned id.
func (s *Service) InsertApplicant(ctx context.Context, a *models.Applicant) *executor.Future[*models.Applicant] {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	return executor.Submit(ctx, s.pool, func(ctx context.Context) (*models.Applicant, error) {
		if err := s.applicants.Insert(ctx, a); err != nil {
			return nil, fmt.Errorf("insert applicant: %w", err)
		}
		return a, nil
	})
}

func (s *Service) UpdateApplicant(ctx context.Context, a *models.Applicant) *executor.Future[*models.Applicant] {
	return executor.Submit(ctx, s.pool, func(ctx context.Context) (*models.Applicant, error) {
		if err := s.applicants.Update(ctx, a); err != nil {
			return nil, fmt.Errorf("update applicant %s: %w", a.ID, err)
		}
		return a, nil
	})
}

// ProgramsForApplicant resolves to every active program followed by every
// program the applicant has a draft application for. A program in both sets
// appears twice.
func (s *Service) ProgramsForApplicant(ctx context.Context, applicantID domain.ApplicantID) *executor.Future[[]models.ProgramDefinition] {
	return executor.Submit(ctx, s.pool, func(ctx context.Context) (_ []models.ProgramDefinition, err error) {
		ctx, span := tracer.Start(ctx, "user.Service.ProgramsForApplicant")
		span.SetAttributes(attribute.Int64("applicant_id", int64(applicantID)))
		defer func() { endSpan(span, err) }()
		if s.metrics != nil {
			defer s.metrics.ObserveProgramsLookup(time.Now())
		}

		var active, drafts []models.ProgramDefinition
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			if active, err = s.programs.ListActive(gctx); err != nil {
				return fmt.Errorf("list active programs: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if drafts, err = s.programs.ListWithDraftApplication(gctx, applicantID); err != nil {
				return fmt.Errorf("list draft programs of applicant %s: %w", applicantID, err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		out := make([]models.ProgramDefinition, 0, len(active)+len(drafts))
		out = append(out, active...)
		return append(out, drafts...), nil
	})
}
