package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/arithmetica/internal/errors"
)

func TestAppError_ErrorIncludesWrapped(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.NewPersistenceUnavailableError(cause)

	assert.Contains(t, err.Error(), "PERSISTENCE_UNAVAILABLE")
	assert.Contains(t, err.Error(), "disk full")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 503, err.Status)
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("submit: %w", errors.NewEmptyInputError("blank"))

	assert.True(t, errors.HasCode(err, errors.ErrCodeEmptyInput))
	assert.False(t, errors.HasCode(err, errors.ErrCodeNotFound))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrCodeEmptyInput))
}
