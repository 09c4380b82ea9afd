package models

// PowerUpKind names a power-up effect. Values outside the known set are still
// accepted by the game; they consume the charge and do nothing else.
type PowerUpKind string

const (
	DoubleScore  PowerUpKind = "double_score"
	RevealAnswer PowerUpKind = "reveal_answer"
	FreezeTimer  PowerUpKind = "freeze_timer"
)

// FreezeTimerBonus is the number of seconds FreezeTimer adds to the clock.
const FreezeTimerBonus = 5

// PowerUpKinds lists the recognized kinds.
func PowerUpKinds() []PowerUpKind {
	return []PowerUpKind{DoubleScore, RevealAnswer, FreezeTimer}
}

// Known reports whether k is one of the recognized kinds.
func (k PowerUpKind) Known() bool {
	switch k {
	case DoubleScore, RevealAnswer, FreezeTimer:
		return true
	}
	return false
}
