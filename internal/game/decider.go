package game

import (
	"fmt"
	"strings"

	"github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/models"
)

// Decide applies a to s. Rejected actions return s unchanged together with a
// Rejection and a notice for the player.
func Decide(s State, a Action, gen Generator) Decision {
	switch a := a.(type) {
	case Start:
		return decideStart(s, gen)
	case Submit:
		return decideSubmit(s, a, gen)
	case Tick:
		return decideTick(s)
	case LevelUp:
		return decideLevelUp(s)
	case ActivatePowerUp:
		return decideActivatePowerUp(s, a)
	}
	return reject(s, errors.ErrCodeInvalidPrecondition, "Unsupported Action", fmt.Sprintf("action %T is not supported", a))
}

func decideStart(s State, gen Generator) Decision {
	if s.Phase != models.PhaseIdle {
		return reject(s, errors.ErrCodeInvalidPrecondition, "Already Started", "This training session has already started.")
	}
	s.Phase = models.PhaseInProgress
	s.Tier = models.Apprentice
	s = nextProblem(s, gen)
	return Decision{State: s, Outcome: OutcomeStarted}
}

func decideSubmit(s State, a Submit, gen Generator) Decision {
	if d, ok := requireInProgress(s); !ok {
		return d
	}
	input := strings.TrimSpace(a.Input)
	if input == "" {
		return reject(s, errors.ErrCodeEmptyInput, "Input Error", "Please enter an answer before submitting.")
	}

	if input != s.Problem.AnswerText() {
		return Decision{
			State:   s,
			Outcome: OutcomeWrong,
			Effects: []Effect{notice(models.NoticeWarning, "Wrong Answer", "The correct answer is "+s.Problem.AnswerText())},
		}
	}

	var effects []Effect
	s.Score++
	s.CorrectStreak++
	if s.CorrectStreak%PowerUpEvery == 0 {
		s.PowerUpCharge = 1
		effects = append(effects, notice(models.NoticeInfo, "Power-Up Earned!", "You have earned a power-up!"))
	}
	if s.CorrectStreak >= LevelUpStreak {
		s.CanLevelUp = true
	}
	s = nextProblem(s, gen)
	return Decision{State: s, Outcome: OutcomeCorrect, Effects: effects}
}

func decideTick(s State) Decision {
	if s.Phase != models.PhaseInProgress || s.TimeRemaining <= 0 {
		return Decision{State: s}
	}
	s.TimeRemaining--
	if s.TimeRemaining > 0 {
		return Decision{State: s, Outcome: OutcomeTicked}
	}

	s.Expired = true
	s.Phase = models.PhaseGameOver
	return Decision{
		State:   s,
		Outcome: OutcomeTimeExpired,
		Effects: []Effect{
			StopTimer{},
			notice(models.NoticeInfo, "Time is up!", fmt.Sprintf("Your final score: %d", s.Score)),
			RecordScore{Score: s.Score},
			ShowResult{Score: s.Score},
		},
	}
}

func decideLevelUp(s State) Decision {
	if d, ok := requireInProgress(s); !ok {
		return d
	}
	if !s.CanLevelUp {
		return reject(s, errors.ErrCodeInvalidPrecondition, "Keep Training",
			fmt.Sprintf("Answer %d questions in a row to level up.", LevelUpStreak))
	}

	s.CorrectStreak = 0
	s.CanLevelUp = false

	next, advanced := s.Tier.Next()
	if !advanced {
		return Decision{
			State:   s,
			Outcome: OutcomeMaxLevel,
			Effects: []Effect{notice(models.NoticeInfo, "Max Level Reached", "You are already at the highest level!")},
		}
	}
	s.Tier = next
	return Decision{
		State:   s,
		Outcome: OutcomeLeveledUp,
		Effects: []Effect{notice(models.NoticeInfo, "Level Up!", levelUpMessage(next))},
	}
}

func levelUpMessage(t models.Tier) string {
	switch t {
	case models.Wizard:
		return "Congratulations! You are now a Wizard!"
	case models.Sorcerer:
		return "Amazing! You are now a Sorcerer!"
	}
	return fmt.Sprintf("You are now a %s!", t)
}

func decideActivatePowerUp(s State, a ActivatePowerUp) Decision {
	if d, ok := requireInProgress(s); !ok {
		return d
	}
	if s.PowerUpCharge <= 0 {
		return reject(s, errors.ErrCodeInvalidPrecondition, "No Power-Up",
			fmt.Sprintf("Answer %d questions correctly to earn a power-up.", PowerUpEvery))
	}

	// The charge is spent whatever the kind.
	s.PowerUpCharge = 0

	var effects []Effect
	switch a.Kind {
	case models.DoubleScore:
		s.Score *= 2
		effects = append(effects, notice(models.NoticeInfo, "Power-Up Activated!", "Your score has been doubled!"))
	case models.RevealAnswer:
		effects = append(effects, notice(models.NoticeInfo, "Revealed Answer", "The answer is: "+s.Problem.AnswerText()))
	case models.FreezeTimer:
		s.TimeRemaining += models.FreezeTimerBonus
		effects = append(effects, notice(models.NoticeInfo, "Power-Up Activated!",
			fmt.Sprintf("Time has been extended by %d seconds!", models.FreezeTimerBonus)))
	}
	return Decision{State: s, Outcome: OutcomePowerUp, Effects: effects}
}

func requireInProgress(s State) (Decision, bool) {
	switch s.Phase {
	case models.PhaseInProgress:
		return Decision{}, true
	case models.PhaseGameOver:
		return reject(s, errors.ErrCodeInvalidPrecondition, "Game Over", "This training session is over."), false
	}
	return reject(s, errors.ErrCodeInvalidPrecondition, "Not Started", "Start training first."), false
}

func nextProblem(s State, gen Generator) State {
	s.Problem = gen.Next(s.Tier)
	s.TimeRemaining = s.Tier.TimeLimit()
	return s
}

func notice(kind models.NoticeKind, title, message string) ShowNotice {
	return ShowNotice{Notice: models.Notice{Kind: kind, Title: title, Message: message}}
}

func reject(s State, code, title, message string) Decision {
	kind := models.NoticeInfo
	if code == errors.ErrCodeEmptyInput {
		kind = models.NoticeError
	}
	return Decision{
		State:     s,
		Rejection: &Rejection{Code: code, Message: message},
		Effects:   []Effect{notice(kind, title, message)},
	}
}
