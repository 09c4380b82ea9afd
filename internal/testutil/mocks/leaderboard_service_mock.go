package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/arithmetica/internal/models"
)

// MockLeaderboardService is a mock implementation of services.LeaderboardService
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) List(ctx context.Context) (*models.Leaderboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

func (m *MockLeaderboardService) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLeaderboardService) Record(ctx context.Context, score int) ([]int, error) {
	args := m.Called(ctx, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}
