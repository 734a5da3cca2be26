package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"uat/internal/audit"
	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/executor"
)

// MergeApplicants links left and right to account, then merges the older
// applicant's answers into the newer one and resolves to the newer
// applicant. On conflicting paths the newer answer wins. Applicants created
// at the same instant are ordered by id, the lower id counting as older.
//
// Each reassignment is saved on its own before the merge. A failure after
// that point leaves both applicants linked but unmerged. Neither applicant
// is deleted.
func (s *Service) MergeApplicants(ctx context.Context, left, right *models.Applicant, account *models.Account) *executor.Future[*models.Applicant] {
	return executor.Submit(ctx, s.pool, func(ctx context.Context) (_ *models.Applicant, err error) {
		ctx, span := tracer.Start(ctx, "user.Service.MergeApplicants")
		span.SetAttributes(
			attribute.Int64("left_applicant_id", int64(left.ID)),
			attribute.Int64("right_applicant_id", int64(right.ID)),
			attribute.Int64("account_id", int64(account.ID)),
		)
		defer func() { endSpan(span, err) }()
		if s.metrics != nil {
			defer s.metrics.ObserveMerge(time.Now())
		}

		for _, a := range []*models.Applicant{left, right} {
			a.SetAccount(account.ID)
			if err := s.applicants.Update(ctx, a); err != nil {
				s.logError(ctx, "failed to reassign applicant", err, "applicant_id", a.ID, "account_id", account.ID)
				return nil, fmt.Errorf("reassign applicant %s: %w", a.ID, err)
			}
		}

		older, newer := left, right
		if right.IsOlderThan(left) {
			older, newer = right, left
		}
		if err := mergeInto(newer, older); err != nil {
			return nil, err
		}
		if err := s.applicants.Update(ctx, newer); err != nil {
			s.logError(ctx, "failed to save merged applicant", err, "applicant_id", newer.ID)
			return nil, fmt.Errorf("save merged applicant %s: %w", newer.ID, err)
		}

		s.emit(ctx, audit.Event{
			Action:       audit.ActionApplicantsMerged,
			AccountID:    account.ID,
			ApplicantIDs: []domain.ApplicantID{older.ID, newer.ID},
			Detail:       fmt.Sprintf("merged %s into %s", older.ID, newer.ID),
		})
		if s.metrics != nil {
			s.metrics.IncrementApplicantsMerged()
		}
		return newer, nil
	})
}

// mergeInto copies every answer of older that newer lacks into newer.
func mergeInto(newer, older *models.Applicant) error {
	dst, err := newer.ApplicantData()
	if err != nil {
		return err
	}
	src, err := older.ApplicantData()
	if err != nil {
		return err
	}
	dst.MergeFrom(src)
	return nil
}
