package applicant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
	txcontext "uat/pkg/platform/tx"
)

// PostgresStore persists applicants in the applicants table. The answer
// document is stored as JSONB and left undecoded until first use.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectApplicant = `SELECT id, account_id, created_at, object FROM applicants`

func (s *PostgresStore) List(ctx context.Context) ([]*models.Applicant, error) {
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, selectApplicant+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return scanApplicants(rows)
}

func (s *PostgresStore) ListByAccount(ctx context.Context, accountID domain.AccountID) ([]*models.Applicant, error) {
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx,
		selectApplicant+` WHERE account_id = $1 ORDER BY id`, int64(accountID))
	if err != nil {
		return nil, fmt.Errorf("list applicants by account: %w", err)
	}
	return scanApplicants(rows)
}

func (s *PostgresStore) FindByID(ctx context.Context, applicantID domain.ApplicantID) (*models.Applicant, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, selectApplicant+` WHERE id = $1`, int64(applicantID))
	a, err := scanApplicant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find applicant by id: %w", err)
	}
	return a, nil
}

// Insert lets the sequence assign the ID and stamps CreatedAt when unset.
func (s *PostgresStore) Insert(ctx context.Context, a *models.Applicant) error {
	raw, err := a.SerializedData()
	if err != nil {
		return fmt.Errorf("insert applicant: %w", err)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	var id int64
	err = txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO applicants (account_id, created_at, object)
		VALUES ($1, $2, $3::jsonb)
		RETURNING id`,
		nullAccount(a.AccountID), a.CreatedAt, string(raw),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert applicant: %w", err)
	}
	a.ID = domain.ApplicantID(id)
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, a *models.Applicant) error {
	raw, err := a.SerializedData()
	if err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	res, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE applicants SET account_id = $2, object = $3::jsonb WHERE id = $1`,
		int64(a.ID), nullAccount(a.AccountID), string(raw),
	)
	if err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	return requireRow(res, "update applicant")
}

func (s *PostgresStore) Delete(ctx context.Context, applicantID domain.ApplicantID) error {
	res, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `DELETE FROM applicants WHERE id = $1`, int64(applicantID))
	if err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	return requireRow(res, "delete applicant")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplicant(row scanner) (*models.Applicant, error) {
	var (
		id        int64
		accountID sql.NullInt64
		createdAt time.Time
		object    []byte
	)
	if err := row.Scan(&id, &accountID, &createdAt, &object); err != nil {
		return nil, err
	}
	return models.RestoreApplicant(domain.ApplicantID(id), domain.AccountID(accountID.Int64), createdAt, object), nil
}

func scanApplicants(rows *sql.Rows) ([]*models.Applicant, error) {
	defer rows.Close()
	var out []*models.Applicant
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applicants: %w", err)
	}
	return out, nil
}

func nullAccount(accountID domain.AccountID) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(accountID), Valid: !accountID.IsZero()}
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
