package game

import "github.com/vytor/arithmetica/internal/models"

const (
	// PowerUpEvery is the streak interval at which a power-up charge is earned.
	PowerUpEvery = 5
	// LevelUpStreak is the streak needed before the player may level up.
	LevelUpStreak = 10
)

// Generator hands out problems for a tier.
type Generator interface {
	Next(tier models.Tier) models.Problem
}

// State is one session's state between two actions.
type State struct {
	Phase         models.Phase
	Tier          models.Tier
	Problem       models.Problem
	Score         int
	TimeRemaining int
	CorrectStreak int
	PowerUpCharge int
	CanLevelUp    bool
	// Expired is set once when the timer runs out.
	Expired bool
}

// NewState returns an idle session at the lowest tier.
func NewState() State {
	return State{
		Phase: models.PhaseIdle,
		Tier:  models.Apprentice,
	}
}

func (s State) Over() bool {
	return s.Phase == models.PhaseGameOver
}

// Snapshot copies the player-visible fields into a read model.
func (s State) Snapshot(id string) models.SessionSnapshot {
	snap := models.SessionSnapshot{
		ID:            id,
		Phase:         s.Phase,
		Tier:          s.Tier,
		Score:         s.Score,
		TimeRemaining: s.TimeRemaining,
		CorrectStreak: s.CorrectStreak,
		PowerUpCharge: s.PowerUpCharge,
		CanLevelUp:    s.CanLevelUp,
	}
	if s.Phase != models.PhaseIdle {
		snap.Round = s.Problem.Round
		snap.Scenario = s.Problem.Scenario
		snap.Question = s.Problem.Question()
	}
	if s.Over() {
		score := s.Score
		snap.FinalScore = &score
	}
	return snap
}
