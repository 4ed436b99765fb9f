// Package streak decides how completed, abandoned and break runs move the
// consecutive Pomodoro count.
package streak

import "github.com/ayoisaiah/doro/internal/models"

// CycleLength is the number of back-to-back Pomodoros in a full cycle. The
// last one of a cycle is the big Pomodoro.
const CycleLength = 3

// Transition is the outcome of completing a Pomodoro.
type Transition struct {
	// Count is the consecutive count after the completion
	Count int
	// Big is set only for the completion that finished a cycle
	Big bool
}

// IsBig reports whether completing a Pomodoro at count finishes a cycle.
// It must be asked before the count moves.
func IsBig(count int) bool {
	return count == CycleLength-1
}

// Complete advances count for a completed Pomodoro.
func Complete(count int) Transition {
	if IsBig(count) || count >= CycleLength {
		return Transition{Count: 0, Big: true}
	}

	return Transition{Count: count + 1}
}

// Quit returns the count after a Pomodoro is abandoned.
func Quit(int) int {
	return 0
}

// EndBreak returns the count after a break of type t runs to completion.
func EndBreak(count int, t models.SessionType) int {
	switch t {
	case models.LongBreak:
		return 0
	case models.ShortBreak, models.Pomo:
		return count
	}

	return count
}

// NextBreak picks the break to offer after a completed Pomodoro.
func NextBreak(big bool) models.SessionType {
	if big {
		return models.LongBreak
	}

	return models.ShortBreak
}
