package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLeaderboardStore is a mock implementation of leaderboard.Store
type MockLeaderboardStore struct {
	mock.Mock
}

func (m *MockLeaderboardStore) Get(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockLeaderboardStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLeaderboardStore) Record(ctx context.Context, score int, limit int) ([]int, error) {
	args := m.Called(ctx, score, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}
