package handlers

import (
	"net/http"

	"github.com/aaronzipp/black-and-white/internal/models"
)

// stateResponse is the operator view of the table
type stateResponse struct {
	models.SessionSnapshot
	Connections int `json:"connections"`
}

// HandleState reports the table without revealing pending cards
func (ctx *Context) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{
		SessionSnapshot: ctx.Registry.Snapshot(),
		Connections:     ctx.Hub.ClientCount(),
	})
}
