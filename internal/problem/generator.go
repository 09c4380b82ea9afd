// Package problem builds random arithmetic problems for a difficulty tier.
//
// Generation is pure apart from the injected random source: the same source
// state always yields the same problem.
package problem

import (
	"sync"

	"github.com/vytor/arithmetica/internal/models"
)

// Source is the randomness the generator needs. *math/rand/v2.Rand
// satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Generate returns a new problem for tier. Both operands are drawn from
// [1, tier.OperandMax()] and the operator is chosen uniformly. Subtraction
// orders the operands so the answer is never negative and division
// multiplies the dividend so the answer is always whole.
func Generate(tier models.Tier, src Source) models.Problem {
	limit := tier.OperandMax()
	left := src.IntN(limit) + 1
	right := src.IntN(limit) + 1
	op := models.Operators()[src.IntN(len(models.Operators()))]

	var answer int
	switch op {
	case models.Add:
		answer = left + right
	case models.Subtract:
		if right > left {
			left, right = right, left
		}
		answer = left - right
	case models.Multiply:
		answer = left * right
	case models.Divide:
		left = left * right
		answer = left / right
	}

	return models.Problem{
		Tier:     tier,
		Left:     left,
		Right:    right,
		Operator: op,
		Answer:   answer,
		Scenario: op.Scenario(right),
	}
}

// Generator numbers the problems it hands out so every round has a distinct
// identity even when the operands repeat.
type Generator struct {
	mu    sync.Mutex
	src   Source
	round int
}

func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// Next returns the next problem for tier.
func (g *Generator) Next(tier models.Tier) models.Problem {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.round++
	p := Generate(tier, g.src)
	p.Round = g.round
	return p
}
