package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/arithmetica/internal/models"
)

// MockResultSink is a mock implementation of session.ResultSink
type MockResultSink struct {
	mock.Mock
}

func (m *MockResultSink) ShowResult(ctx context.Context, final models.SessionSnapshot) {
	m.Called(ctx, final)
}
