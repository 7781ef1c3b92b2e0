package models

// GameStatus represents the current state of the round engine
type GameStatus string

// A round resolves inside the call that lays its second card, so no
// resolving state is ever observable.
const (
	StatusIdle    GameStatus = "idle"
	StatusPlaying GameStatus = "playing"
)
