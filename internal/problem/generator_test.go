package problem_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/arithmetica/internal/models"
	"github.com/vytor/arithmetica/internal/problem"
)

// scripted returns the queued values in order, each reduced modulo n.
type scripted struct {
	values []int
}

func (s *scripted) IntN(n int) int {
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

func TestGenerate_AdditionScenario(t *testing.T) {
	// operands 6 and 4, operator index 0 (add)
	src := &scripted{values: []int{5, 3, 0}}

	p := problem.Generate(models.Apprentice, src)

	assert.Equal(t, "6 + 4", p.Question())
	assert.Equal(t, "10", p.AnswerText())
	assert.Equal(t, models.Add, p.Operator)
	assert.Equal(t, "Arithmetica needs to mix two magical potions. Solve to find the total: ", p.Scenario)
}

func TestGenerate_SubtractionOrdersOperands(t *testing.T) {
	src := &scripted{values: []int{2, 8, 1}}

	p := problem.Generate(models.Apprentice, src)

	assert.Equal(t, models.Subtract, p.Operator)
	assert.Equal(t, 9, p.Left)
	assert.Equal(t, 3, p.Right)
	assert.Equal(t, 6, p.Answer)
	assert.Equal(t, "9 - 3", p.Question())
}

func TestGenerate_Multiplication(t *testing.T) {
	src := &scripted{values: []int{6, 6, 2}}

	p := problem.Generate(models.Wizard, src)

	assert.Equal(t, models.Multiply, p.Operator)
	assert.Equal(t, 49, p.Answer)
	assert.Equal(t, "Arithmetica is multiplying her magic energy. Calculate the total energy: ", p.Scenario)
}

func TestGenerate_DivisionIsExact(t *testing.T) {
	src := &scripted{values: []int{6, 2, 3}}

	p := problem.Generate(models.Apprentice, src)

	assert.Equal(t, models.Divide, p.Operator)
	assert.Equal(t, 21, p.Left)
	assert.Equal(t, 3, p.Right)
	assert.Equal(t, 7, p.Answer)
	assert.Equal(t, "21 / 3", p.Question())
	assert.Equal(t, "Arithmetica has a treasure and needs to share it equally among 3 friends. How much does each get? ", p.Scenario)
}

func TestGenerate_OperandRanges(t *testing.T) {
	tests := []struct {
		tier models.Tier
		max  int
	}{
		{models.Apprentice, 10},
		{models.Wizard, 20},
		{models.Sorcerer, 50},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			// Highest possible draw for both operands, addition.
			src := &scripted{values: []int{tt.max - 1, tt.max - 1, 0}}
			p := problem.Generate(tt.tier, src)
			assert.Equal(t, tt.max, p.Left)
			assert.Equal(t, tt.max, p.Right)

			// Lowest possible draw.
			src = &scripted{values: []int{0, 0, 0}}
			p = problem.Generate(tt.tier, src)
			assert.Equal(t, 1, p.Left)
			assert.Equal(t, 1, p.Right)
		})
	}
}

func TestGenerate_InvariantsHoldForRandomDraws(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for _, tier := range []models.Tier{models.Apprentice, models.Wizard, models.Sorcerer} {
		for i := 0; i < 2000; i++ {
			p := problem.Generate(tier, rng)

			require.True(t, p.Operator.Valid())
			assert.GreaterOrEqual(t, p.Answer, 0, "answer must be non-negative: %s", p.Question())
			assert.GreaterOrEqual(t, p.Right, 1)

			switch p.Operator {
			case models.Add:
				assert.Equal(t, p.Left+p.Right, p.Answer)
			case models.Subtract:
				assert.GreaterOrEqual(t, p.Left, p.Right)
				assert.Equal(t, p.Left-p.Right, p.Answer)
			case models.Multiply:
				assert.Equal(t, p.Left*p.Right, p.Answer)
			case models.Divide:
				assert.Zero(t, p.Left%p.Right, "dividend must be a multiple of divisor: %s", p.Question())
				assert.Equal(t, p.Left/p.Right, p.Answer)
			}
		}
	}
}

func TestGenerator_NumbersRounds(t *testing.T) {
	// Same draws twice: the problems match in value but not in identity.
	src := &scripted{values: []int{5, 3, 0, 5, 3, 0}}
	gen := problem.NewGenerator(src)

	first := gen.Next(models.Apprentice)
	second := gen.Next(models.Apprentice)

	assert.Equal(t, first.Question(), second.Question())
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, 2, second.Round)
}
