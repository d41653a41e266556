package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) SummarizeArticle(ctx context.Context, title, content string) (string, error) {
	args := m.Called(ctx, title, content)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	args := m.Called(ctx, text, targetLang)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Moderate(ctx context.Context, text string) (Moderation, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(Moderation), args.Error(1)
}

func (m *MockClient) ChatWithTools(ctx context.Context, userInput string, tools []Tool) (string, error) {
	args := m.Called(ctx, userInput, tools)
	return args.String(0), args.Error(1)
}
