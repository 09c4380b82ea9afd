package models

import "fmt"

// Operator is one of the four arithmetic operations a problem can use.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide

	operatorCount
)

type operatorSpec struct {
	name     string
	symbol   string
	scenario string
}

var operatorSpecs = [...]operatorSpec{
	Add: {
		name:     "add",
		symbol:   "+",
		scenario: "Arithmetica needs to mix two magical potions. Solve to find the total: ",
	},
	Subtract: {
		name:     "subtract",
		symbol:   "-",
		scenario: "To defeat a magical creature, Arithmetica must subtract its power. Find the difference: ",
	},
	Multiply: {
		name:     "multiply",
		symbol:   "*",
		scenario: "Arithmetica is multiplying her magic energy. Calculate the total energy: ",
	},
	Divide: {
		name:     "divide",
		symbol:   "/",
		scenario: "Arithmetica has a treasure and needs to share it equally among %d friends. How much does each get? ",
	},
}

var _ = [1]struct{}{}[len(operatorSpecs)-int(operatorCount)]

// Operators lists every operator in declaration order.
func Operators() []Operator {
	ops := make([]Operator, 0, operatorCount)
	for op := Operator(0); op < operatorCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

func (o Operator) Valid() bool {
	return o >= 0 && o < operatorCount
}

func (o Operator) String() string {
	if !o.Valid() {
		return "unknown"
	}
	return operatorSpecs[o].name
}

// Symbol is the character used when rendering the question.
func (o Operator) Symbol() string {
	if !o.Valid() {
		return "?"
	}
	return operatorSpecs[o].symbol
}

// Scenario returns the flavor text shown above the question. Division mentions
// the divisor.
func (o Operator) Scenario(right int) string {
	switch o {
	case Divide:
		return fmt.Sprintf(operatorSpecs[o].scenario, right)
	case Add, Subtract, Multiply:
		return operatorSpecs[o].scenario
	}
	return ""
}

func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
