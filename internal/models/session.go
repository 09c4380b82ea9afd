package models

import "time"

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseInProgress Phase = "in_progress"
	PhaseGameOver   Phase = "game_over"
)

// SessionSnapshot is the read model of a running or finished session.
type SessionSnapshot struct {
	ID            string    `json:"id"`
	Phase         Phase     `json:"phase"`
	Tier          Tier      `json:"tier"`
	Round         int       `json:"round"`
	Scenario      string    `json:"scenario"`
	Question      string    `json:"question"`
	Score         int       `json:"score"`
	TimeRemaining int       `json:"time_remaining"`
	CorrectStreak int       `json:"correct_streak"`
	PowerUpCharge int       `json:"power_up_charge"`
	CanLevelUp    bool      `json:"can_level_up"`
	FinalScore    *int      `json:"final_score,omitempty"`
	Notices       []Notice  `json:"notices,omitempty"`
	StartedAt     time.Time `json:"started_at"`
}

// SessionResult is what the result screen receives when a session ends.
type SessionResult struct {
	SessionID  string    `json:"session_id"`
	Score      int       `json:"score"`
	FinishedAt time.Time `json:"finished_at"`
}
