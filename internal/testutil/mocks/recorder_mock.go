package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRecorder is a mock implementation of session.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, score int) ([]int, error) {
	args := m.Called(ctx, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}
