// Package repository contains data access abstractions for mirrored Formora data.
// Implementations live in subpackages (postgres). No business logic here.
package repository

import (
	"context"
	"time"

	"formora/internal/model"
)

// TemplateRepository persists mirrored templates.
// Lookups that miss return sql.ErrNoRows.
type TemplateRepository interface {
	// FindByRemoteID returns the template mirroring the given Formora template id.
	FindByRemoteID(ctx context.Context, remoteID int64) (*model.Template, error)

	// FindByID returns a template by its local id.
	FindByID(ctx context.Context, id int64) (*model.Template, error)

	// Create inserts a template. If a row with the same remote id already
	// exists it is returned unchanged instead.
	Create(ctx context.Context, t *model.Template) (*model.Template, error)

	// MarkSynced records the time and token of the latest import.
	MarkSynced(ctx context.Context, id int64, at time.Time, apiToken string) error

	// List returns a page of templates, most recently synced first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Template], error)
}

// QuestionRepository persists questions and their statistics.
// Lookups that miss return sql.ErrNoRows.
type QuestionRepository interface {
	// FindByRemoteID returns the question of a template with the given Formora question id.
	FindByRemoteID(ctx context.Context, templateID, remoteID int64) (*model.Question, error)

	// Create inserts a question. If the (template, remote id) pair already
	// exists the stored row is returned unchanged instead.
	Create(ctx context.Context, q *model.Question) (*model.Question, error)

	// UpdateStats overwrites the computed statistics of a question.
	UpdateStats(ctx context.Context, id int64, stats model.QuestionStats) error

	// ListByTemplate returns the questions of a template ordered by remote id.
	// With tableOnly set only questions flagged show_in_table are returned.
	ListByTemplate(ctx context.Context, templateID int64, tableOnly bool) ([]model.Question, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
