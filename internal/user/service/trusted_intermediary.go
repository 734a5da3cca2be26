package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"uat/internal/audit"
	"uat/internal/user/models"
	"uat/pkg/domain"
	dErrors "uat/pkg/domain-errors"
	"uat/pkg/platform/sentinel"
)

const (
	membershipAdded   = "added"
	membershipRemoved = "removed"
	membershipCleared = "cleared"
)

func (s *Service) ListTrustedIntermediaryGroups(ctx context.Context) ([]*models.TrustedIntermediaryGroup, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trusted intermediary groups: %w", err)
	}
	return groups, nil
}

// GetTrustedIntermediaryGroup returns the group, or nil when none has that id.
func (s *Service) GetTrustedIntermediaryGroup(ctx context.Context, groupID domain.GroupID) (*models.TrustedIntermediaryGroup, error) {
	g, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trusted intermediary group %s: %w", groupID, err)
	}
	return g, nil
}

func (s *Service) CreateTrustedIntermediaryGroup(ctx context.Context, name, description string) (*models.TrustedIntermediaryGroup, error) {
	g, err := models.NewTrustedIntermediaryGroup(name, description, s.now())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.groups.Insert(ctx, g); err != nil {
		return nil, fmt.Errorf("create trusted intermediary group: %w", err)
	}
	s.emit(ctx, audit.Event{Action: audit.ActionGroupCreated, GroupID: g.ID, Detail: g.Name})
	return g, nil
}

// DeleteTrustedIntermediaryGroup removes the group after clearing the
// membership of each of its accounts. The accounts themselves are kept.
func (s *Service) DeleteTrustedIntermediaryGroup(ctx context.Context, groupID domain.GroupID) (err error) {
	ctx, span := tracer.Start(ctx, "user.Service.DeleteTrustedIntermediaryGroup")
	span.SetAttributes(attribute.Int64("group_id", int64(groupID)))
	defer func() { endSpan(span, err) }()

	var cleared int
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.requireGroup(ctx, groupID); err != nil {
			return err
		}
		members, err := s.accounts.ListByGroup(ctx, groupID)
		if err != nil {
			return fmt.Errorf("list members of group %s: %w", groupID, err)
		}
		for _, m := range members {
			m.LeaveGroup()
			if err := s.accounts.Update(ctx, m); err != nil {
				return fmt.Errorf("clear membership of account %s: %w", m.ID, err)
			}
		}
		if err := s.groups.Delete(ctx, groupID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return NoSuchTrustedIntermediaryGroupError{GroupID: groupID}
			}
			return fmt.Errorf("delete trusted intermediary group %s: %w", groupID, err)
		}
		cleared = len(members)
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, audit.Event{
		Action:  audit.ActionGroupDeleted,
		GroupID: groupID,
		Detail:  fmt.Sprintf("%d members cleared", cleared),
	})
	if s.metrics != nil && cleared > 0 {
		s.metrics.MembershipChanges.WithLabelValues(membershipCleared).Add(float64(cleared))
	}
	return nil
}

// AddTrustedIntermediaryToGroup makes the account with email a member of the
// group. An unregistered email gets a new account so the membership is in
// place when that person first signs in. A member of another group moves.
func (s *Service) AddTrustedIntermediaryToGroup(ctx context.Context, groupID domain.GroupID, email string) (_ *models.Account, err error) {
	ctx, span := tracer.Start(ctx, "user.Service.AddTrustedIntermediaryToGroup")
	span.SetAttributes(attribute.Int64("group_id", int64(groupID)))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(email) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email address is required")
	}

	var member *models.Account
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.requireGroup(ctx, groupID); err != nil {
			return err
		}
		account, err := s.LookupAccount(ctx, email)
		if err != nil {
			return err
		}
		if account == nil {
			account = models.NewAccount(email)
			if err := s.accounts.Insert(ctx, account); err != nil {
				return fmt.Errorf("create account for trusted intermediary: %w", err)
			}
		}
		account.JoinGroup(groupID)
		if err := s.accounts.Update(ctx, account); err != nil {
			return fmt.Errorf("add account %s to group %s: %w", account.ID, groupID, err)
		}
		member = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, audit.Event{Action: audit.ActionMemberAdded, GroupID: groupID, AccountID: member.ID})
	if s.metrics != nil {
		s.metrics.IncrementMembershipChange(membershipAdded)
	}
	return member, nil
}

// RemoveTrustedIntermediaryFromGroup clears the account's membership. It
// fails with NoSuchTrustedIntermediaryGroupError for an unknown group and
// with NoSuchTrustedIntermediaryError when the account does not exist or is
// not a member of that group.
func (s *Service) RemoveTrustedIntermediaryFromGroup(ctx context.Context, groupID domain.GroupID, accountID domain.AccountID) (err error) {
	ctx, span := tracer.Start(ctx, "user.Service.RemoveTrustedIntermediaryFromGroup")
	span.SetAttributes(
		attribute.Int64("group_id", int64(groupID)),
		attribute.Int64("account_id", int64(accountID)),
	)
	defer func() { endSpan(span, err) }()

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.requireGroup(ctx, groupID); err != nil {
			return err
		}
		account, err := s.accounts.FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return NoSuchTrustedIntermediaryError{GroupID: groupID, AccountID: accountID}
			}
			return fmt.Errorf("find account %s: %w", accountID, err)
		}
		if !account.IsMemberOf(groupID) {
			return NoSuchTrustedIntermediaryError{GroupID: groupID, AccountID: accountID}
		}
		account.LeaveGroup()
		if err := s.accounts.Update(ctx, account); err != nil {
			return fmt.Errorf("remove account %s from group %s: %w", accountID, groupID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, audit.Event{Action: audit.ActionMemberRemoved, GroupID: groupID, AccountID: accountID})
	if s.metrics != nil {
		s.metrics.IncrementMembershipChange(membershipRemoved)
	}
	return nil
}

// ListTrustedIntermediaries returns the member accounts of the group.
func (s *Service) ListTrustedIntermediaries(ctx context.Context, groupID domain.GroupID) ([]*models.Account, error) {
	if _, err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}
	members, err := s.accounts.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members of group %s: %w", groupID, err)
	}
	return members, nil
}

func (s *Service) requireGroup(ctx context.Context, groupID domain.GroupID) (*models.TrustedIntermediaryGroup, error) {
	g, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, NoSuchTrustedIntermediaryGroupError{GroupID: groupID}
		}
		return nil, fmt.Errorf("find trusted intermediary group %s: %w", groupID, err)
	}
	return g, nil
}
