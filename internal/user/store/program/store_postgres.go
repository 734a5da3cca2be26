package program

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"golang.org/x/text/language"

	"uat/internal/user/models"
	"uat/pkg/domain"
	"uat/pkg/platform/sentinel"
	txcontext "uat/pkg/platform/tx"
)

// PostgresStore reads programs and applications. Localized texts are JSONB
// objects keyed by BCP 47 tag; question ids are a BIGINT[] column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectProgram = `
	SELECT p.id, p.admin_name, p.admin_description, p.localized_name,
	       p.localized_description, p.lifecycle_stage, p.question_ids
	FROM programs p`

func (s *PostgresStore) FindByID(ctx context.Context, programID domain.ProgramID) (*models.ProgramDefinition, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, selectProgram+` WHERE p.id = $1`, int64(programID))
	p, err := scanProgram(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find program by id: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListActive(ctx context.Context) ([]models.ProgramDefinition, error) {
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx,
		selectProgram+` WHERE p.lifecycle_stage = $1 ORDER BY p.id`, string(domain.LifecycleStageActive))
	if err != nil {
		return nil, fmt.Errorf("list active programs: %w", err)
	}
	return scanPrograms(rows)
}

func (s *PostgresStore) ListWithDraftApplication(ctx context.Context, applicantID domain.ApplicantID) ([]models.ProgramDefinition, error) {
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, selectProgram+`
		WHERE EXISTS (
			SELECT 1 FROM applications a
			WHERE a.program_id = p.id AND a.applicant_id = $1 AND a.lifecycle_stage = $2
		)
		ORDER BY p.id`,
		int64(applicantID), string(domain.LifecycleStageDraft))
	if err != nil {
		return nil, fmt.Errorf("list programs with draft application: %w", err)
	}
	return scanPrograms(rows)
}

func (s *PostgresStore) Insert(ctx context.Context, p *models.ProgramDefinition) error {
	name, err := json.Marshal(p.LocalizedName)
	if err != nil {
		return fmt.Errorf("marshal program name: %w", err)
	}
	desc, err := json.Marshal(p.LocalizedDescription)
	if err != nil {
		return fmt.Errorf("marshal program description: %w", err)
	}
	questionIDs := make([]int64, 0, len(p.QuestionIDs))
	for _, q := range p.QuestionIDs {
		questionIDs = append(questionIDs, int64(q))
	}
	var id int64
	err = txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO programs (admin_name, admin_description, localized_name, localized_description, lifecycle_stage, question_ids)
		VALUES ($1, $2, $3::jsonb, $4::jsonb, $5, $6)
		RETURNING id`,
		p.AdminName, p.AdminDescription, string(name), string(desc), string(p.Stage), pq.Array(questionIDs),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert program: %w", err)
	}
	p.ID = domain.ProgramID(id)
	return nil
}

func (s *PostgresStore) InsertApplication(ctx context.Context, app *models.Application) error {
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	var id int64
	err := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO applications (applicant_id, program_id, lifecycle_stage, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		int64(app.ApplicantID), int64(app.ProgramID), string(app.Stage), app.CreatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	app.ID = domain.ApplicationID(id)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgram(row scanner) (*models.ProgramDefinition, error) {
	var (
		id          int64
		p           models.ProgramDefinition
		name, desc  []byte
		stage       string
		questionIDs []int64
	)
	if err := row.Scan(&id, &p.AdminName, &p.AdminDescription, &name, &desc, &stage, pq.Array(&questionIDs)); err != nil {
		return nil, err
	}
	p.ID = domain.ProgramID(id)
	p.Stage = domain.LifecycleStage(stage)
	var err error
	if p.LocalizedName, err = decodeLocalized(name); err != nil {
		return nil, fmt.Errorf("decode program %d name: %w", id, err)
	}
	if p.LocalizedDescription, err = decodeLocalized(desc); err != nil {
		return nil, fmt.Errorf("decode program %d description: %w", id, err)
	}
	for _, q := range questionIDs {
		p.QuestionIDs = append(p.QuestionIDs, domain.QuestionID(q))
	}
	return &p, nil
}

func scanPrograms(rows *sql.Rows) ([]models.ProgramDefinition, error) {
	defer rows.Close()
	var out []models.ProgramDefinition
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate programs: %w", err)
	}
	return out, nil
}

func decodeLocalized(raw []byte) (map[language.Tag]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var texts map[language.Tag]string
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil, err
	}
	return texts, nil
}
