package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/arithmetica/internal/models"
	"github.com/vytor/arithmetica/internal/services"
)

// MockGameService is a mock implementation of services.GameService
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) action(args mock.Arguments) (*services.ActionResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ActionResult), args.Error(1)
}

func (m *MockGameService) Start(ctx context.Context) (*services.ActionResult, error) {
	return m.action(m.Called(ctx))
}

func (m *MockGameService) Get(ctx context.Context, id string) (*models.SessionSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionSnapshot), args.Error(1)
}

func (m *MockGameService) Submit(ctx context.Context, id string, input string) (*services.ActionResult, error) {
	return m.action(m.Called(ctx, id, input))
}

func (m *MockGameService) LevelUp(ctx context.Context, id string) (*services.ActionResult, error) {
	return m.action(m.Called(ctx, id))
}

func (m *MockGameService) ActivatePowerUp(ctx context.Context, id string, kind models.PowerUpKind) (*services.ActionResult, error) {
	return m.action(m.Called(ctx, id, kind))
}

func (m *MockGameService) Leave(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameService) Result(ctx context.Context, id string) (*models.SessionResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionResult), args.Error(1)
}

func (m *MockGameService) Sessions() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockGameService) Shutdown() {
	m.Called()
}
