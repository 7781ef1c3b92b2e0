package models

// Card is a face-down card value. Legal values are 1 through 9.
type Card int

const (
	MinCard Card = 1
	MaxCard Card = 9
)

// Valid reports whether the card is inside the playable range
func (c Card) Valid() bool {
	return c >= MinCard && c <= MaxCard
}

// Even reports the card's parity, the only thing an opponent may learn before reveal
func (c Card) Even() bool {
	return c%2 == 0
}

// Submission is one participant's card for the current round
type Submission struct {
	Handle string
	Card   Card
}

// GameOptions are chosen by whoever starts the game
type GameOptions struct {
	CarryOver bool
}

// RoundState is the authoritative game state (ephemeral, reset on every start)
type RoundState struct {
	InProgress      bool
	Jackpot         int
	Submissions     []Submission // arrival order, never more than two
	CarryOver       bool
	NextFirstPlayer string // "" when the next round has no turn restriction
}

// Status derives the engine state from the round fields
func (r RoundState) Status() GameStatus {
	if !r.InProgress {
		return StatusIdle
	}
	return StatusPlaying
}

// HasSubmitted reports whether handle already has a card down this round
func (r RoundState) HasSubmitted(handle string) bool {
	for _, s := range r.Submissions {
		if s.Handle == handle {
			return true
		}
	}
	return false
}

// Cards returns the pending submissions keyed by handle
func (r RoundState) Cards() map[string]int {
	cards := make(map[string]int, len(r.Submissions))
	for _, s := range r.Submissions {
		cards[s.Handle] = int(s.Card)
	}
	return cards
}

// Clone returns a copy that shares no slices with r
func (r RoundState) Clone() RoundState {
	if r.Submissions != nil {
		r.Submissions = append([]Submission(nil), r.Submissions...)
	}
	return r
}

// RoundOutcome describes one resolved round
type RoundOutcome struct {
	Winner string // "" on a draw
	Draw   bool
	Stake  int // jackpot in force when the round resolved
	Cards  map[string]int
	Scores map[string]int
}
