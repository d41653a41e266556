package weather

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of Gateway using testify/mock.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Current(ctx context.Context, city string, units Units) (Reading, error) {
	args := m.Called(ctx, city, units)
	return args.Get(0).(Reading), args.Error(1)
}
