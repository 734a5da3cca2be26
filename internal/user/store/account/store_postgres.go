package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"uat/internal/platform/postgres"
	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
	txcontext "uat/pkg/platform/tx"
)

// PostgresStore persists accounts. Email uniqueness is enforced by the
// accounts_email_address_key constraint.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectAccount = `SELECT id, email_address, member_of_group_id FROM accounts`

func (s *PostgresStore) FindByID(ctx context.Context, accountID domain.AccountID) (*models.Account, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, selectAccount+` WHERE id = $1`, int64(accountID))
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx,
		selectAccount+` WHERE email_address = $1`, models.NormalizeEmail(email))
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) Insert(ctx context.Context, a *models.Account) error {
	a.EmailAddress = models.NormalizeEmail(a.EmailAddress)
	var id int64
	err := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO accounts (email_address, member_of_group_id)
		VALUES ($1, $2)
		RETURNING id`,
		a.EmailAddress, nullGroup(a.MemberOfGroupID),
	).Scan(&id)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("insert account: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	a.ID = domain.AccountID(id)
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, a *models.Account) error {
	a.EmailAddress = models.NormalizeEmail(a.EmailAddress)
	res, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE accounts SET email_address = $2, member_of_group_id = $3 WHERE id = $1`,
		int64(a.ID), a.EmailAddress, nullGroup(a.MemberOfGroupID),
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("update account: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByGroup(ctx context.Context, groupID domain.GroupID) ([]*models.Account, error) {
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx,
		selectAccount+` WHERE member_of_group_id = $1 ORDER BY id`, int64(groupID))
	if err != nil {
		return nil, fmt.Errorf("list accounts by group: %w", err)
	}
	defer rows.Close()
	var out []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	var (
		id      int64
		email   string
		groupID sql.NullInt64
	)
	if err := row.Scan(&id, &email, &groupID); err != nil {
		return nil, err
	}
	return &models.Account{
		ID:              domain.AccountID(id),
		EmailAddress:    email,
		MemberOfGroupID: domain.GroupID(groupID.Int64),
	}, nil
}

func nullGroup(groupID domain.GroupID) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(groupID), Valid: !groupID.IsZero()}
}
