package game

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/models"
	"github.com/aaronzipp/black-and-white/internal/sse"
	"github.com/aaronzipp/black-and-white/internal/store"
)

// Registry tracks who is seated and forwards gameplay to the Engine.
// Every inbound event runs to completion under one lock.
type Registry struct {
	mu     sync.Mutex
	seats  seats
	scores *store.ScoreLedger
	engine *Engine
	notify Notifier
	now    func() time.Time
}

// NewRegistry creates an empty table delivering events through notify
func NewRegistry(notify Notifier) *Registry {
	scores := store.NewScoreLedger()
	return &Registry{
		scores: scores,
		engine: NewEngine(scores, notify),
		notify: notify,
		now:    time.Now,
	}
}

// Connect seats handle and returns its role. A third arrival gets a
// full_room notice and ErrRoomFull; the caller must then drop the connection.
func (r *Registry) Connect(handle string) (models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.seats.find(handle); p != nil {
		return p.Role, nil
	}

	p, ok := r.seats.take(handle, r.now())
	if !ok {
		log.Info().Str("handle", handle).Msg("connection rejected: room full")
		r.notify.Send(handle, sse.EventFullRoom, MsgRoomFull)
		return "", ErrRoomFull
	}
	r.scores.Ensure(handle)

	count := r.seats.count()
	log.Info().Str("handle", handle).Str("role", string(p.Role)).Int("players", count).Msg("participant connected")
	r.notify.Send(handle, sse.EventPlayerRole, models.PlayerRole{IsHost: p.IsHost()})
	r.notify.Broadcast(sse.EventUpdatePlayerCount, count)
	return p.Role, nil
}

// Disconnect frees handle's seat, drops its score and abandons any game
func (r *Registry) Disconnect(handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	left, promoted := r.seats.leave(handle)
	if left == nil {
		return ErrUnknownParticipant
	}
	r.scores.Delete(handle)
	r.engine.Abandon()

	count := r.seats.count()
	log.Info().Str("handle", handle).Int("players", count).Msg("participant left")
	r.notify.Broadcast(sse.EventUpdatePlayerCount, count)
	r.notify.Broadcast(sse.EventPlayerLeft, MsgPlayerLeft)
	if promoted != nil {
		log.Info().Str("handle", promoted.Handle).Msg("host changed")
		r.notify.Send(promoted.Handle, sse.EventPlayerRole, models.PlayerRole{IsHost: promoted.IsHost()})
	}
	return nil
}

// StartGame starts a new game on behalf of handle
func (r *Registry) StartGame(handle string, opts models.GameOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seats.find(handle) == nil {
		return ErrUnknownParticipant
	}
	return r.engine.Start(r.seats.handles(), opts)
}

// SubmitCard forwards handle's card to the engine
func (r *Registry) SubmitCard(handle string, card models.Card) (*models.RoundOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seats.find(handle) == nil {
		return nil, ErrUnknownParticipant
	}
	return r.engine.Submit(handle, card)
}

// Snapshot returns a view of the table without revealing pending card values
func (r *Registry) Snapshot() models.SessionSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	round := r.engine.State()
	snap := models.SessionSnapshot{
		Players:     r.seats.count(),
		Status:      round.Status(),
		InProgress:  round.InProgress,
		Jackpot:     round.Jackpot,
		CarryOver:   round.CarryOver,
		FirstPlayer: models.OptionalHandle(round.NextFirstPlayer),
		Pending:     len(round.Submissions),
		Seats:       make([]models.Participant, 0, MaxPlayers),
		Scores:      r.scores.Snapshot(),
	}
	for _, p := range r.seats {
		if p != nil {
			snap.Seats = append(snap.Seats, *p)
		}
	}
	if host := r.seats[0]; host != nil {
		snap.Host = host.Handle
	}
	return snap
}
