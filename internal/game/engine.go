package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/models"
	"github.com/aaronzipp/black-and-white/internal/sse"
	"github.com/aaronzipp/black-and-white/internal/store"
)

// Engine owns the round state and runs round resolution.
// It is not safe for concurrent use; Registry serializes every call.
type Engine struct {
	round  models.RoundState
	scores *store.ScoreLedger
	notify Notifier
}

// NewEngine creates an idle engine writing to scores and emitting through notify
func NewEngine(scores *store.ScoreLedger, notify Notifier) *Engine {
	return &Engine{
		round:  models.RoundState{Jackpot: InitialJackpot, CarryOver: DefaultCarryOver},
		scores: scores,
		notify: notify,
	}
}

// State returns a copy of the current round state
func (e *Engine) State() models.RoundState {
	return e.round.Clone()
}

// Start begins a new game for the seated players, resetting their scores
func (e *Engine) Start(players []string, opts models.GameOptions) error {
	if len(players) != MaxPlayers {
		return ErrNotEnoughPlayers
	}

	e.round = models.RoundState{
		InProgress: true,
		Jackpot:    InitialJackpot,
		CarryOver:  opts.CarryOver,
	}
	for _, handle := range players {
		e.scores.Set(handle, 0)
	}

	log.Info().Strs("players", players).Bool("carryover", opts.CarryOver).Msg("game started")
	e.notify.Broadcast(sse.EventGameStart, models.GameStart{
		Msg:         MsgGameStart,
		Scores:      e.scores.Snapshot(),
		FirstPlayer: nil,
		Jackpot:     e.round.Jackpot,
	})
	return nil
}

// Submit records handle's card. When it is the second card of the round the
// round resolves before Submit returns and the outcome is non-nil.
func (e *Engine) Submit(handle string, card models.Card) (*models.RoundOutcome, error) {
	if !e.round.InProgress {
		return nil, ErrNotPlaying
	}
	if e.round.HasSubmitted(handle) {
		return nil, ErrAlreadySubmitted
	}
	if !card.Valid() {
		e.notify.Send(handle, sse.EventWarning, MsgInvalidCard)
		return nil, fmt.Errorf("%w: %d", ErrInvalidCard, card)
	}
	if len(e.round.Submissions) == 0 && e.round.NextFirstPlayer != "" && e.round.NextFirstPlayer != handle {
		e.notify.Send(handle, sse.EventWarning, MsgNotYourTurn)
		return nil, ErrNotYourTurn
	}

	e.round.Submissions = append(e.round.Submissions, models.Submission{Handle: handle, Card: card})
	e.notify.Send(handle, sse.EventMessage, fmt.Sprintf("%s %d", MsgOwnChoice, card))
	e.notify.BroadcastExcept(handle, sse.EventOpponentSubmitted, models.OpponentSubmitted{
		Msg:   MsgOpponentSubmitted,
		Color: ColorOf(card),
	})

	if len(e.round.Submissions) < MaxPlayers {
		return nil, nil
	}
	return e.resolve(), nil
}

// Abandon ends the game without resolving pending submissions
func (e *Engine) Abandon() {
	if e.round.InProgress || len(e.round.Submissions) > 0 {
		log.Info().Int("pending", len(e.round.Submissions)).Msg("game abandoned")
	}
	e.round.InProgress = false
	e.round.Submissions = nil
}

func (e *Engine) resolve() *models.RoundOutcome {
	first, second := e.round.Submissions[0], e.round.Submissions[1]
	outcome := &models.RoundOutcome{
		Stake: e.round.Jackpot,
		Cards: e.round.Cards(),
	}

	winner, draw := Resolve(first, second)
	if draw {
		outcome.Draw = true
		e.round.Jackpot = NextJackpot(e.round.Jackpot, e.round.CarryOver)
		e.round.NextFirstPlayer = ""
	} else {
		outcome.Winner = winner
		e.round.NextFirstPlayer = winner
		if _, ok := e.scores.Add(winner, e.round.Jackpot); !ok {
			log.Error().Str("winner", winner).Msg("winner has no ledger entry")
		}
		e.round.Jackpot = InitialJackpot
	}
	outcome.Scores = e.scores.Snapshot()

	log.Info().
		Str("winner", winner).
		Bool("draw", draw).
		Int("stake", outcome.Stake).
		Int("jackpot", e.round.Jackpot).
		Interface("cards", outcome.Cards).
		Msg("round resolved")

	e.notify.Broadcast(sse.EventRoundResult, models.RoundResult{
		WinnerID:    models.OptionalHandle(winner),
		FirstPlayer: models.OptionalHandle(e.round.NextFirstPlayer),
		Cards:       outcome.Cards,
		Scores:      outcome.Scores,
		Jackpot:     e.round.Jackpot,
	})
	e.notify.Broadcast(sse.EventUpdateScore, outcome.Scores)

	e.round.Submissions = nil
	return outcome
}
