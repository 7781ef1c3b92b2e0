package models

import "time"

// Role is the seat a participant holds in the current pair
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Participant represents one live connection at the table
type Participant struct {
	Handle   string    `json:"handle"` // transport-assigned, never reused across reconnects
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// IsHost reports whether the participant holds the first seat
func (p *Participant) IsHost() bool {
	return p.Role == RoleHost
}
