package postgres

import (
	"context"
	"database/sql"
	"time"

	"formora/internal/model"
	"formora/internal/repository"
)

// TemplatePostgres is a PostgreSQL implementation of repository.TemplateRepository.
type TemplatePostgres struct {
	db *sql.DB
}

// NewTemplatePostgres creates a new TemplatePostgres repository.
func NewTemplatePostgres(db *sql.DB) *TemplatePostgres {
	return &TemplatePostgres{db: db}
}

var _ repository.TemplateRepository = (*TemplatePostgres)(nil)

const templateColumns = `id, remote_id, title, author, owner, last_sync, api_token, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*model.Template, error) {
	var (
		t        model.Template
		lastSync sql.NullTime
	)
	if err := row.Scan(
		&t.ID,
		&t.RemoteID,
		&t.Title,
		&t.Author,
		&t.Owner,
		&lastSync,
		&t.APIToken,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if lastSync.Valid {
		ls := lastSync.Time
		t.LastSync = &ls
	}
	return &t, nil
}

// FindByRemoteID fetches the template with the given Formora id.
func (r *TemplatePostgres) FindByRemoteID(ctx context.Context, remoteID int64) (*model.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM formora_templates WHERE remote_id = $1`
	return scanTemplate(r.db.QueryRowContext(ctx, q, remoteID))
}

// FindByID fetches a template by local id.
func (r *TemplatePostgres) FindByID(ctx context.Context, id int64) (*model.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM formora_templates WHERE id = $1`
	return scanTemplate(r.db.QueryRowContext(ctx, q, id))
}

// Create inserts a template row, or returns the existing row for the same remote id.
// The no-op DO UPDATE makes RETURNING yield the conflicting row.
func (r *TemplatePostgres) Create(ctx context.Context, t *model.Template) (*model.Template, error) {
	const q = `
		INSERT INTO formora_templates (remote_id, title, author, owner, api_token)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (remote_id) DO UPDATE SET remote_id = EXCLUDED.remote_id
		RETURNING ` + templateColumns
	return scanTemplate(r.db.QueryRowContext(ctx, q,
		t.RemoteID,
		t.Title,
		t.Author,
		t.Owner,
		t.APIToken,
	))
}

// MarkSynced stamps the template with the time and token of the latest import.
func (r *TemplatePostgres) MarkSynced(ctx context.Context, id int64, at time.Time, apiToken string) error {
	const q = `UPDATE formora_templates SET last_sync = $2, api_token = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, at, apiToken)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns templates using LIMIT/OFFSET pagination and a total count.
func (r *TemplatePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Template], error) {
	const qCount = `SELECT COUNT(*) FROM formora_templates`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + templateColumns + `
		FROM formora_templates
		ORDER BY last_sync DESC NULLS LAST, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Template]{
		Items: items,
		Total: total,
	}, nil
}
