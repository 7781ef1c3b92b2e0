package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/game"
)

const (
	// maxBodyBytes caps inbound action payloads
	maxBodyBytes = 4 << 10

	// sessionCookie carries the stream's secret token on POST actions
	sessionCookie = "bw_session"

	// sessionHeader is the alternative for clients without a cookie jar
	sessionHeader = "X-Session-Token"
)

var errNoSession = errors.New("no session")

// hello is the first event on every connection; it tells the client its
// handle and, on the SSE transport, the token that authorizes its POSTs
type hello struct {
	Handle string `json:"handle"`
	Token  string `json:"token,omitempty"`
}

// participantFrom resolves the acting handle from the request's session token.
// Handles named in request bodies are never trusted.
func (ctx *Context) participantFrom(r *http.Request) (string, error) {
	token := r.Header.Get(sessionHeader)
	if token == "" {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			return "", errNoSession
		}
		token = cookie.Value
	}
	handle, ok := ctx.Sessions.Lookup(token)
	if !ok {
		return "", game.ErrUnknownParticipant
	}
	return handle, nil
}

// writeSessionError answers an action request that carried no usable session
func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNoSession) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Error(w, "Unknown session", http.StatusNotFound)
}

// decodeJSON reads a single JSON object from the request body
func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return errors.New("decode body: trailing data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("write json response")
	}
}

// actionStatus maps a core result onto the HTTP status of an action request.
// Ignored actions still succeed; the protocol drops stray messages quietly.
func actionStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusNoContent
	case errors.Is(err, game.ErrUnknownParticipant):
		return http.StatusNotFound
	default:
		return http.StatusNoContent
	}
}

// logRejected records why an inbound action had no effect
func logRejected(handle, event string, err error) {
	if game.Ignorable(err) {
		log.Debug().Err(err).Str("handle", handle).Str("event", event).Msg("action ignored")
		return
	}
	log.Info().Err(err).Str("handle", handle).Str("event", event).Msg("action rejected")
}

// originChecker allows the configured origins; with none configured gorilla's same-origin check applies
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
