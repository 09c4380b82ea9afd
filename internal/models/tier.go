package models

// Tier is the difficulty level of a session. Tiers are ordered; a session only
// ever moves forward through them.
type Tier int

const (
	Apprentice Tier = iota
	Wizard
	Sorcerer

	tierCount
)

// DefaultTimeLimit applies to any value outside the known tiers.
const DefaultTimeLimit = 30

type tierSpec struct {
	name       string
	operandMax int
	timeLimit  int
}

// Indexed by Tier. The length assertion below fails to compile if a tier is
// added without a row here.
var tierSpecs = [...]tierSpec{
	Apprentice: {name: "Apprentice", operandMax: 10, timeLimit: 30},
	Wizard:     {name: "Wizard", operandMax: 20, timeLimit: 20},
	Sorcerer:   {name: "Sorcerer", operandMax: 50, timeLimit: 15},
}

var _ = [1]struct{}{}[len(tierSpecs)-int(tierCount)]

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t >= 0 && t < tierCount
}

func (t Tier) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return tierSpecs[t].name
}

// OperandMax is the upper bound (inclusive) for both operands of a problem.
func (t Tier) OperandMax() int {
	if !t.Valid() {
		return tierSpecs[Apprentice].operandMax
	}
	return tierSpecs[t].operandMax
}

// TimeLimit is the number of seconds the player gets for each problem.
func (t Tier) TimeLimit() int {
	if !t.Valid() {
		return DefaultTimeLimit
	}
	return tierSpecs[t].timeLimit
}

// Next returns the tier after t. Sorcerer is the ceiling: it returns itself
// and false.
func (t Tier) Next() (Tier, bool) {
	if !t.Valid() || t+1 >= tierCount {
		return t, false
	}
	return t + 1, true
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
