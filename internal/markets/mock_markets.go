package markets

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of Gateway using testify/mock.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Quotes(ctx context.Context, names []string) ([]Quote, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Quote), args.Error(1)
}
