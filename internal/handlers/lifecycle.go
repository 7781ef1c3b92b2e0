package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/models"
	"github.com/aaronzipp/black-and-white/internal/sse"
)

// startRequest is the body of POST /start
type startRequest struct {
	CarryOver *bool `json:"carryover"`
}

// startOptions is the payload of a request_start_game frame
type startOptions struct {
	CarryOver *bool `json:"carryover"`
}

// HandleStartGame starts a new game for a seated participant
func (ctx *Context) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	handle, err := ctx.participantFrom(r)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	w.WriteHeader(actionStatus(ctx.startGame(handle, req.CarryOver)))
}

// startGame applies the configured default when the request leaves carry-over unset
func (ctx *Context) startGame(handle string, carryOver *bool) error {
	opts := models.GameOptions{CarryOver: ctx.Config.DefaultCarryOver}
	if carryOver != nil {
		opts.CarryOver = *carryOver
	}

	log.Debug().Str("handle", handle).Bool("carryover", opts.CarryOver).Msg("start requested")
	err := ctx.Registry.StartGame(handle, opts)
	if err != nil {
		logRejected(handle, sse.EventRequestStartGame, err)
	}
	return err
}
