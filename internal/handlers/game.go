package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/game"
	"github.com/aaronzipp/black-and-white/internal/models"
	"github.com/aaronzipp/black-and-white/internal/sse"
)

// submitRequest is the body of POST /submit
type submitRequest struct {
	CardNumber *int `json:"cardNumber"`
}

// HandleSubmitCard puts a participant's card down for the current round
func (ctx *Context) HandleSubmitCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CardNumber == nil {
		http.Error(w, "cardNumber is required", http.StatusBadRequest)
		return
	}
	handle, err := ctx.participantFrom(r)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	w.WriteHeader(actionStatus(ctx.submitCard(handle, models.Card(*req.CardNumber))))
}

func (ctx *Context) submitCard(handle string, card models.Card) error {
	outcome, err := ctx.Registry.SubmitCard(handle, card)
	if err != nil {
		logRejected(handle, sse.EventSubmitCard, err)
		return err
	}
	if outcome == nil {
		log.Debug().Str("handle", handle).Msg("card down, waiting for opponent")
	}
	return nil
}

// warnInvalidCard tells a sender its card payload could not be read
func (ctx *Context) warnInvalidCard(handle string) {
	ctx.Hub.Send(handle, sse.EventWarning, game.MsgInvalidCard)
}
