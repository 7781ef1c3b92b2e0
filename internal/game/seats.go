package game

import (
	"time"

	"github.com/aaronzipp/black-and-white/internal/models"
)

// seats is the fixed-capacity participant set. Occupied seats are always a
// prefix and seat 0 is the host.
type seats [MaxPlayers]*models.Participant

func (s *seats) count() int {
	n := 0
	for _, p := range s {
		if p != nil {
			n++
		}
	}
	return n
}

func (s *seats) find(handle string) *models.Participant {
	for _, p := range s {
		if p != nil && p.Handle == handle {
			return p
		}
	}
	return nil
}

// take seats handle in the first free slot; false when the table is full
func (s *seats) take(handle string, now time.Time) (*models.Participant, bool) {
	for i, p := range s {
		if p != nil {
			continue
		}
		s[i] = &models.Participant{Handle: handle, Role: roleFor(i), JoinedAt: now}
		return s[i], true
	}
	return nil, false
}

// leave frees handle's seat and slides later participants forward.
// promoted is the participant whose role changed as a result, if any.
func (s *seats) leave(handle string) (left, promoted *models.Participant) {
	idx := -1
	for i, p := range s {
		if p != nil && p.Handle == handle {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	left = s[idx]
	copy(s[idx:], s[idx+1:])
	s[len(s)-1] = nil
	for i, p := range s {
		if p == nil {
			continue
		}
		if role := roleFor(i); p.Role != role {
			p.Role = role
			promoted = p
		}
	}
	return left, promoted
}

func (s *seats) handles() []string {
	out := make([]string, 0, MaxPlayers)
	for _, p := range s {
		if p != nil {
			out = append(out, p.Handle)
		}
	}
	return out
}

func roleFor(seat int) models.Role {
	if seat == 0 {
		return models.RoleHost
	}
	return models.RoleGuest
}
