// Package game holds the session state machine.
//
// Decide is a pure function from the current State and an Action to the next
// State plus the effects the caller must carry out (notices, persisting the
// score, handing the result to the result screen, stopping the timer). It
// never performs I/O and never reads the clock.
package game
