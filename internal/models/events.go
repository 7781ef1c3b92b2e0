package models

// Outbound payloads. Field names follow the wire protocol the browser client speaks.

// PlayerRole is sent to a participant when its seat is assigned or changes
type PlayerRole struct {
	IsHost bool `json:"isHost"`
}

// GameStart is broadcast when a new game begins
type GameStart struct {
	Msg         string         `json:"msg"`
	Scores      map[string]int `json:"scores"`
	FirstPlayer *string        `json:"firstPlayer"`
	Jackpot     int            `json:"jackpot"`
}

// OpponentSubmitted tells the other side a card is down, revealing only its color
type OpponentSubmitted struct {
	Msg   string `json:"msg"`
	Color string `json:"color"`
}

// RoundResult reveals both cards and the updated ledger
type RoundResult struct {
	WinnerID    *string        `json:"winnerId"`
	FirstPlayer *string        `json:"firstPlayer"`
	Cards       map[string]int `json:"cards"`
	Scores      map[string]int `json:"scores"`
	Jackpot     int            `json:"jackpot"`
}

// OptionalHandle maps the empty handle to JSON null
func OptionalHandle(handle string) *string {
	if handle == "" {
		return nil
	}
	return &handle
}
