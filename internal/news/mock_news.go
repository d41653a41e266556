package news

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of Gateway using testify/mock.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Search(ctx context.Context, topic string, count int) ([]Article, error) {
	args := m.Called(ctx, topic, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Article), args.Error(1)
}

func (m *MockGateway) TopHeadlines(ctx context.Context, count int) ([]Article, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Article), args.Error(1)
}
