package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrDefaultSize = 256
	qrMinSize     = 128
	qrMaxSize     = 1024
)

// HandleJoinQR renders the join link as a PNG so the second player can scan it
func (ctx *Context) HandleJoinQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	size := qrDefaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < qrMinSize || n > qrMaxSize {
			http.Error(w, "size must be between 128 and 1024", http.StatusBadRequest)
			return
		}
		size = n
	}

	png, err := qrcode.Encode(ctx.joinURL(r), qrcode.Medium, size)
	if err != nil {
		log.Error().Err(err).Msg("handleJoinQR: encode failed")
		http.Error(w, "Failed to render QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}

// joinURL prefers the configured public URL over the request's Host header
func (ctx *Context) joinURL(r *http.Request) string {
	if ctx.Config.PublicURL != "" {
		return ctx.Config.PublicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}
