package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/arithmetica/internal/models"
)

func TestTier_Next(t *testing.T) {
	next, ok := models.Apprentice.Next()
	assert.True(t, ok)
	assert.Equal(t, models.Wizard, next)

	next, ok = models.Wizard.Next()
	assert.True(t, ok)
	assert.Equal(t, models.Sorcerer, next)

	next, ok = models.Sorcerer.Next()
	assert.False(t, ok, "Sorcerer is the ceiling")
	assert.Equal(t, models.Sorcerer, next)
}

func TestTier_TimeLimit(t *testing.T) {
	assert.Equal(t, 30, models.Apprentice.TimeLimit())
	assert.Equal(t, 20, models.Wizard.TimeLimit())
	assert.Equal(t, 15, models.Sorcerer.TimeLimit())
	assert.Equal(t, models.DefaultTimeLimit, models.Tier(42).TimeLimit())
	assert.Equal(t, models.DefaultTimeLimit, models.Tier(-1).TimeLimit())
}

func TestTier_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(map[string]models.Tier{"tier": models.Sorcerer})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"tier":"Sorcerer"}`, string(b))
}

func TestPowerUpKind_Known(t *testing.T) {
	for _, k := range models.PowerUpKinds() {
		assert.True(t, k.Known(), k)
	}
	assert.False(t, models.PowerUpKind("lightning_bolt").Known())
}
