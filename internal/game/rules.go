package game

import "github.com/aaronzipp/black-and-white/internal/models"

// Beats reports whether card a wins against card b.
// The higher card wins, except that a 1 upsets a 9.
func Beats(a, b models.Card) bool {
	switch {
	case a == 1 && b == 9:
		return true
	case a == 9 && b == 1:
		return false
	default:
		return a > b
	}
}

// Resolve compares two submissions; winner is "" when the cards are equal
func Resolve(first, second models.Submission) (winner string, draw bool) {
	if first.Card == second.Card {
		return "", true
	}
	if Beats(first.Card, second.Card) {
		return first.Handle, false
	}
	return second.Handle, false
}

// NextJackpot is the pool after a draw
func NextJackpot(jackpot int, carryOver bool) int {
	if carryOver {
		return jackpot + 1
	}
	return InitialJackpot
}

// ColorOf returns the label an opponent sees for a face-down card
func ColorOf(card models.Card) string {
	if card.Even() {
		return ColorBlack
	}
	return ColorWhite
}
