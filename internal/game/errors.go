package game

import "errors"

var (
	// ErrRoomFull is returned when both seats are taken
	ErrRoomFull = errors.New("room is full")
	// ErrUnknownParticipant is returned for handles that hold no seat
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrNotEnoughPlayers is returned when a start is requested without a full table
	ErrNotEnoughPlayers = errors.New("need exactly two players")
	// ErrNotPlaying is returned for submissions outside a game
	ErrNotPlaying = errors.New("no game in progress")
	// ErrAlreadySubmitted is returned for a second card in the same round
	ErrAlreadySubmitted = errors.New("card already submitted this round")
	// ErrNotYourTurn is returned when the previous winner has not led yet
	ErrNotYourTurn = errors.New("not your turn")
	// ErrInvalidCard is returned for values outside 1..9
	ErrInvalidCard = errors.New("invalid card")
)

// Ignorable reports whether err is a stray action the protocol drops without telling anyone
func Ignorable(err error) bool {
	return errors.Is(err, ErrNotEnoughPlayers) ||
		errors.Is(err, ErrNotPlaying) ||
		errors.Is(err, ErrAlreadySubmitted) ||
		errors.Is(err, ErrUnknownParticipant)
}
