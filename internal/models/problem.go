package models

import (
	"fmt"
	"strconv"
)

// Problem is a single arithmetic question. Problems are never mutated; every
// new round gets a new value with a higher Round.
type Problem struct {
	Round    int      `json:"round"`
	Tier     Tier     `json:"tier"`
	Left     int      `json:"left"`
	Right    int      `json:"right"`
	Operator Operator `json:"operator"`
	Answer   int      `json:"-"`
	Scenario string   `json:"scenario"`
}

// Question renders the problem as shown to the player, e.g. "6 + 4".
func (p Problem) Question() string {
	return fmt.Sprintf("%d %s %d", p.Left, p.Operator.Symbol(), p.Right)
}

// AnswerText is the expected answer as the player would type it.
func (p Problem) AnswerText() string {
	return strconv.Itoa(p.Answer)
}
