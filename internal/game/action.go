package game

import "github.com/vytor/arithmetica/internal/models"

// Action is a closed set of inputs to Decide.
type Action interface {
	action()
}

// Start begins a session: first problem, full timer.
type Start struct{}

// Submit is the player's typed answer.
type Submit struct {
	Input string
}

// Tick is one second of wall-clock time.
type Tick struct{}

// LevelUp asks to advance to the next tier.
type LevelUp struct{}

// ActivatePowerUp spends the power-up charge.
type ActivatePowerUp struct {
	Kind models.PowerUpKind
}

func (Start) action()           {}
func (Submit) action()          {}
func (Tick) action()            {}
func (LevelUp) action()         {}
func (ActivatePowerUp) action() {}

// Effect is a side effect requested by Decide.
type Effect interface {
	effect()
}

// ShowNotice asks the UI to display a message.
type ShowNotice struct {
	Notice models.Notice
}

// RecordScore asks for the final score to be merged into the leaderboard.
type RecordScore struct {
	Score int
}

// ShowResult hands the final score to the result screen.
type ShowResult struct {
	Score int
}

// StopTimer cancels the tick source.
type StopTimer struct{}

func (ShowNotice) effect()  {}
func (RecordScore) effect() {}
func (ShowResult) effect()  {}
func (StopTimer) effect()   {}

// Outcome names what an accepted action did.
type Outcome string

const (
	OutcomeNone        Outcome = ""
	OutcomeStarted     Outcome = "started"
	OutcomeCorrect     Outcome = "answered_correct"
	OutcomeWrong       Outcome = "answered_wrong"
	OutcomeTicked      Outcome = "ticked"
	OutcomeTimeExpired Outcome = "time_expired"
	OutcomeLeveledUp   Outcome = "leveled_up"
	OutcomeMaxLevel    Outcome = "max_level"
	OutcomePowerUp     Outcome = "power_up"
)

// Rejection explains why an action left the state untouched.
type Rejection struct {
	Code    string
	Message string
}

// Decision is the result of applying an action.
type Decision struct {
	State     State
	Effects   []Effect
	Outcome   Outcome
	Rejection *Rejection
}

// Notices returns the notices among the decision's effects.
func (d Decision) Notices() []models.Notice {
	var out []models.Notice
	for _, e := range d.Effects {
		if n, ok := e.(ShowNotice); ok {
			out = append(out, n.Notice)
		}
	}
	return out
}
