package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/game"
	"github.com/aaronzipp/black-and-white/internal/render"
	"github.com/aaronzipp/black-and-white/internal/sse"
)

// HandleEvents opens a Server-Sent Events stream. Opening the stream is the
// connect event; the request ending is the disconnect event.
func (ctx *Context) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies

	handle := uuid.New().String()
	token := ctx.Sessions.Issue(handle)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	})
	client := ctx.Hub.AddClient(handle)
	ctx.Hub.Send(handle, sse.EventHello, hello{Handle: handle, Token: token})

	if _, err := ctx.Registry.Connect(handle); err != nil {
		// full_room is already queued; deliver it, then hang up
		ctx.Sessions.Revoke(token)
		ctx.Hub.RemoveClient(handle)
		drainSSE(w, client)
		flusher.Flush()
		if !errors.Is(err, game.ErrRoomFull) {
			log.Error().Err(err).Str("handle", handle).Msg("handleEvents: connect failed")
		}
		return
	}
	defer func() {
		ctx.Sessions.Revoke(token)
		ctx.Hub.RemoveClient(handle)
		if err := ctx.Registry.Disconnect(handle); err != nil {
			log.Debug().Err(err).Str("handle", handle).Msg("handleEvents: disconnect")
		}
	}()

	log.Debug().Str("handle", handle).Str("remote", r.RemoteAddr).Msg("handleEvents: stream open")

	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			log.Debug().Str("handle", handle).Msg("handleEvents: client went away")
			return
		case <-client.Done():
			drainSSE(w, client)
			flusher.Flush()
			return
		case msg := <-client.Messages():
			fmt.Fprint(w, render.SSEFrame(msg.Event, msg.Data))
			flusher.Flush()
		}
	}
}

// drainSSE writes whatever is still queued for a client that is being dropped
func drainSSE(w http.ResponseWriter, client *sse.Client) {
	for {
		select {
		case msg := <-client.Messages():
			fmt.Fprint(w, render.SSEFrame(msg.Event, msg.Data))
		default:
			return
		}
	}
}
