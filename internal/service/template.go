package service

import (
	"context"
	"database/sql"
	"errors"

	"formora/internal/model"
	"formora/internal/repository"
)

// TemplateListResult is the service-level DTO for paginated templates.
type TemplateListResult struct {
	Items []model.Template `json:"data"`
	Total int              `json:"total"`
}

// TemplateService exposes the mirrored templates and their question statistics.
type TemplateService interface {
	// List returns templates using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*TemplateListResult, error)

	// Get returns a template with all of its questions.
	Get(ctx context.Context, id int64) (*model.Template, error)

	// Questions returns a template's questions, optionally only those shown in tables.
	Questions(ctx context.Context, id int64, tableOnly bool) ([]model.Question, error)
}

type templateService struct {
	templates repository.TemplateRepository
	questions repository.QuestionRepository
}

// NewTemplateService constructs a new TemplateService.
func NewTemplateService(templates repository.TemplateRepository, questions repository.QuestionRepository) TemplateService {
	return &templateService{templates: templates, questions: questions}
}

func (s *templateService) List(ctx context.Context, limit, offset int) (*TemplateListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.templates.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &TemplateListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *templateService) Get(ctx context.Context, id int64) (*model.Template, error) {
	tpl, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	qs, err := s.questions.ListByTemplate(ctx, tpl.ID, false)
	if err != nil {
		return nil, err
	}
	tpl.Questions = qs
	return tpl, nil
}

func (s *templateService) Questions(ctx context.Context, id int64, tableOnly bool) ([]model.Question, error) {
	tpl, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.questions.ListByTemplate(ctx, tpl.ID, tableOnly)
}

func (s *templateService) find(ctx context.Context, id int64) (*model.Template, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	tpl, err := s.templates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tpl, nil
}
