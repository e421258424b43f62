package mocks

import (
	"context"

	"formora/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) FindByRemoteID(ctx context.Context, templateID, remoteID int64) (*model.Question, error) {
	args := m.Called(ctx, templateID, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) Create(ctx context.Context, q *model.Question) (*model.Question, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) UpdateStats(ctx context.Context, id int64, stats model.QuestionStats) error {
	args := m.Called(ctx, id, stats)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListByTemplate(ctx context.Context, templateID int64, tableOnly bool) ([]model.Question, error) {
	args := m.Called(ctx, templateID, tableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}
