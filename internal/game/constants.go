package game

const (
	// MaxPlayers is the table size; a game starts only when every seat is taken
	MaxPlayers = 2

	// InitialJackpot is the pool at the start of a game and after every win
	InitialJackpot = 1

	// DefaultCarryOver is used when a start request does not choose
	DefaultCarryOver = true

	// Color labels revealed to the opponent when a card goes down
	ColorBlack = "black"
	ColorWhite = "white"
)

// Player-facing texts
const (
	MsgRoomFull          = "The room is full."
	MsgGameStart         = "Game started!"
	MsgOwnChoice         = "You played:"
	MsgOpponentSubmitted = "Opponent has submitted a card."
	MsgNotYourTurn       = "Not your turn! The winner of the last round must play first."
	MsgInvalidCard       = "Cards must be a whole number from 1 to 9."
	MsgPlayerLeft        = "Your opponent left. The game is over."
)
