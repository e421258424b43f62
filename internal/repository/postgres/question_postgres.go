package postgres

import (
	"context"
	"database/sql"

	"formora/internal/model"
	"formora/internal/repository"
)

// QuestionPostgres is a PostgreSQL implementation of repository.QuestionRepository.
type QuestionPostgres struct {
	db *sql.DB
}

// NewQuestionPostgres creates a new QuestionPostgres repository.
func NewQuestionPostgres(db *sql.DB) *QuestionPostgres {
	return &QuestionPostgres{db: db}
}

var _ repository.QuestionRepository = (*QuestionPostgres)(nil)

const questionColumns = `id, template_id, remote_id, question_text, question_type, show_in_table,
	avg_value, min_value, max_value, common_answers`

func scanQuestion(row rowScanner) (*model.Question, error) {
	var q model.Question
	if err := row.Scan(
		&q.ID,
		&q.TemplateID,
		&q.RemoteID,
		&q.Text,
		&q.Type,
		&q.ShowInTable,
		&q.Avg,
		&q.Min,
		&q.Max,
		&q.CommonAnswers,
	); err != nil {
		return nil, err
	}
	return &q, nil
}

// FindByRemoteID fetches a question of a template by its Formora id.
func (r *QuestionPostgres) FindByRemoteID(ctx context.Context, templateID, remoteID int64) (*model.Question, error) {
	const q = `SELECT ` + questionColumns + ` FROM formora_questions WHERE template_id = $1 AND remote_id = $2`
	return scanQuestion(r.db.QueryRowContext(ctx, q, templateID, remoteID))
}

// Create inserts a question row, or returns the existing row for the same (template, remote id).
func (r *QuestionPostgres) Create(ctx context.Context, in *model.Question) (*model.Question, error) {
	const q = `
		INSERT INTO formora_questions (template_id, remote_id, question_text, question_type, show_in_table)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (template_id, remote_id) DO UPDATE SET remote_id = EXCLUDED.remote_id
		RETURNING ` + questionColumns
	return scanQuestion(r.db.QueryRowContext(ctx, q,
		in.TemplateID,
		in.RemoteID,
		in.Text,
		in.Type,
		in.ShowInTable,
	))
}

// UpdateStats overwrites the statistics columns of a question.
func (r *QuestionPostgres) UpdateStats(ctx context.Context, id int64, s model.QuestionStats) error {
	const q = `
		UPDATE formora_questions
		SET avg_value = $2, min_value = $3, max_value = $4, common_answers = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, s.Avg, s.Min, s.Max, s.CommonAnswers)
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

// ListByTemplate returns a template's questions ordered by remote id.
func (r *QuestionPostgres) ListByTemplate(ctx context.Context, templateID int64, tableOnly bool) ([]model.Question, error) {
	const q = `
		SELECT ` + questionColumns + `
		FROM formora_questions
		WHERE template_id = $1 AND ($2 = FALSE OR show_in_table)
		ORDER BY remote_id
	`
	rows, err := r.db.QueryContext(ctx, q, templateID, tableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Question, 0)
	for rows.Next() {
		qu, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *qu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
