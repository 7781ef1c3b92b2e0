package handlers

import (
	"net/http"
	"os"

	"github.com/gorilla/websocket"

	"github.com/aaronzipp/black-and-white/internal/config"
	"github.com/aaronzipp/black-and-white/internal/game"
	"github.com/aaronzipp/black-and-white/internal/sse"
	"github.com/aaronzipp/black-and-white/internal/store"
)

// Context holds shared application dependencies
type Context struct {
	Registry *game.Registry
	Hub      *sse.Hub
	Sessions *store.SessionStore
	Config   config.Config
	upgrader websocket.Upgrader
	static   http.Handler
}

// NewContext wires a fresh table to a fresh hub
func NewContext(cfg config.Config) *Context {
	hub := sse.NewHub(cfg.ClientBuffer)
	ctx := &Context{
		Registry: game.NewRegistry(hub),
		Hub:      hub,
		Sessions: store.NewSessionStore(),
		Config:   cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
	}
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		ctx.static = http.FileServer(http.Dir(cfg.StaticDir))
	}
	return ctx
}

// Routes registers every endpoint on a new mux
func (ctx *Context) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ctx.HandleIndex)
	mux.HandleFunc("/events", ctx.HandleEvents)
	mux.HandleFunc("/ws", ctx.HandleWebSocket)
	mux.HandleFunc("/start", ctx.HandleStartGame)
	mux.HandleFunc("/submit", ctx.HandleSubmitCard)
	mux.HandleFunc("/state", ctx.HandleState)
	mux.HandleFunc("/qr.png", ctx.HandleJoinQR)
	return mux
}

// HandleIndex serves the static client when one is installed
func (ctx *Context) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if ctx.static != nil {
		ctx.static.ServeHTTP(w, r)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("black-and-white: connect via /events or /ws\n"))
}
