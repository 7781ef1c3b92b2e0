package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/game"
	"github.com/aaronzipp/black-and-white/internal/models"
	"github.com/aaronzipp/black-and-white/internal/render"
	"github.com/aaronzipp/black-and-white/internal/sse"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 1024
)

// frame is the envelope used in both directions on a WebSocket
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// HandleWebSocket serves the bidirectional transport
func (ctx *Context) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ctx.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error
		log.Debug().Err(err).Msg("handleWebSocket: upgrade failed")
		return
	}

	handle := uuid.New().String()
	client := ctx.Hub.AddClient(handle)
	ctx.Hub.Send(handle, sse.EventHello, hello{Handle: handle})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		wsWritePump(conn, client)
	}()

	if _, err := ctx.Registry.Connect(handle); err != nil {
		if !errors.Is(err, game.ErrRoomFull) {
			log.Error().Err(err).Str("handle", handle).Msg("handleWebSocket: connect failed")
		}
		ctx.Hub.RemoveClient(handle)
		<-writerDone
		return
	}

	log.Debug().Str("handle", handle).Str("remote", r.RemoteAddr).Msg("handleWebSocket: connected")
	ctx.wsReadPump(conn, handle)

	ctx.Hub.RemoveClient(handle)
	if err := ctx.Registry.Disconnect(handle); err != nil {
		log.Debug().Err(err).Str("handle", handle).Msg("handleWebSocket: disconnect")
	}
	<-writerDone
}

// wsReadPump dispatches inbound frames until the connection fails
func (ctx *Context) wsReadPump(conn *websocket.Conn, handle string) {
	conn.SetReadLimit(wsMaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Info().Err(err).Str("handle", handle).Msg("wsReadPump: connection lost")
			}
			return
		}
		var in frame
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Debug().Err(err).Str("handle", handle).Msg("wsReadPump: malformed frame dropped")
			continue
		}
		ctx.dispatchFrame(handle, in)
	}
}

// dispatchFrame validates one inbound frame and forwards it to the core
func (ctx *Context) dispatchFrame(handle string, in frame) {
	switch in.Event {
	case sse.EventRequestStartGame:
		var opts startOptions
		if len(in.Data) > 0 && string(in.Data) != "null" {
			if err := json.Unmarshal(in.Data, &opts); err != nil {
				log.Debug().Err(err).Str("handle", handle).Msg("dispatchFrame: bad start options")
				return
			}
		}
		ctx.startGame(handle, opts.CarryOver)
	case sse.EventSubmitCard:
		var card int
		if err := json.Unmarshal(in.Data, &card); err != nil {
			log.Debug().Err(err).Str("handle", handle).Msg("dispatchFrame: bad card")
			ctx.warnInvalidCard(handle)
			return
		}
		ctx.submitCard(handle, models.Card(card))
	default:
		log.Debug().Str("handle", handle).Str("event", in.Event).Msg("dispatchFrame: unknown event dropped")
	}
}

// wsWritePump is the connection's only writer. It exits after the hub drops
// the client, flushing anything still queued first.
func wsWritePump(conn *websocket.Conn, client *sse.Client) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	write := func(msg models.Message) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteMessage(websocket.TextMessage, render.Envelope(msg.Event, msg.Data))
	}

	for {
		select {
		case msg := <-client.Messages():
			if err := write(msg); err != nil {
				log.Debug().Err(err).Str("handle", client.Handle).Msg("wsWritePump: write failed")
				return
			}
		case <-client.Done():
			flushQueued(client, write)
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteWait))
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// flushQueued writes whatever is still queued for a client that is being dropped
func flushQueued(client *sse.Client, write func(models.Message) error) {
	for {
		select {
		case msg := <-client.Messages():
			if err := write(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}
