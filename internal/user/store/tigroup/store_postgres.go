package tigroup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
	txcontext "uat/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectGroup = `SELECT id, name, description, created_at FROM ti_groups`

func (s *PostgresStore) List(ctx context.Context) ([]*models.TrustedIntermediaryGroup, error) {
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, selectGroup+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list trusted intermediary groups: %w", err)
	}
	defer rows.Close()
	var out []*models.TrustedIntermediaryGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trusted intermediary group: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trusted intermediary groups: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, groupID domain.GroupID) (*models.TrustedIntermediaryGroup, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, selectGroup+` WHERE id = $1`, int64(groupID))
	g, err := scanGroup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find trusted intermediary group: %w", err)
	}
	return g, nil
}

func (s *PostgresStore) Insert(ctx context.Context, g *models.TrustedIntermediaryGroup) error {
	var id int64
	err := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO ti_groups (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		g.Name, g.Description, g.CreatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert trusted intermediary group: %w", err)
	}
	g.ID = domain.GroupID(id)
	return nil
}

// Delete removes the group. Member accounts lose their membership through
// the ON DELETE SET NULL foreign key.
func (s *PostgresStore) Delete(ctx context.Context, groupID domain.GroupID) error {
	res, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `DELETE FROM ti_groups WHERE id = $1`, int64(groupID))
	if err != nil {
		return fmt.Errorf("delete trusted intermediary group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trusted intermediary group: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (*models.TrustedIntermediaryGroup, error) {
	var (
		id int64
		g  models.TrustedIntermediaryGroup
	)
	if err := row.Scan(&id, &g.Name, &g.Description, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.ID = domain.GroupID(id)
	return &g, nil
}
