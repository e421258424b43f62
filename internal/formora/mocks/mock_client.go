package mocks

import (
	"context"

	"formora/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) FetchSubmissions(ctx context.Context, apiToken string, templateID int64) ([]model.Submission, error) {
	args := m.Called(ctx, apiToken, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Submission), args.Error(1)
}
