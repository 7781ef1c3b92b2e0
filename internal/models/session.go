package models

// Message is one outbound event queued for a single connection
type Message struct {
	Event string // Event type (e.g., "round_result", "warning")
	Data  string // JSON-encoded payload
}

// SessionSnapshot is a read-only view of the table for operators
type SessionSnapshot struct {
	Players     int            `json:"players"`
	Host        string         `json:"host,omitempty"`
	Seats       []Participant  `json:"seats"` // host first
	Status      GameStatus     `json:"status"`
	InProgress  bool           `json:"inProgress"`
	Jackpot     int            `json:"jackpot"`
	CarryOver   bool           `json:"carryover"`
	FirstPlayer *string        `json:"firstPlayer"`
	Pending     int            `json:"pending"`
	Scores      map[string]int `json:"scores"`
}
