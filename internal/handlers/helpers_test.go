package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/black-and-white/internal/config"
	"github.com/aaronzipp/black-and-white/internal/logging"
)

const waitFor = 2 * time.Second

func newTestServer(t *testing.T) (*Context, *httptest.Server) {
	t.Helper()
	logging.ConfigureTests()
	cfg := config.Default()
	cfg.StaticDir = filepath.Join(t.TempDir(), "missing")
	ctx := NewContext(cfg)
	srv := httptest.NewServer(ctx.Routes())
	t.Cleanup(srv.Close)
	return ctx, srv
}

// wsPlayer is a test client speaking the WebSocket envelope
type wsPlayer struct {
	t      *testing.T
	conn   *websocket.Conn
	handle string
}

func dialPlayer(t *testing.T, srv *httptest.Server) *wsPlayer {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	p := &wsPlayer{t: t, conn: conn}

	var h hello
	p.expect("hello", &h)
	p.handle = h.Handle
	require.NotEmpty(t, p.handle)
	return p
}

// next reads the next frame
func (p *wsPlayer) next() (frame, error) {
	p.conn.SetReadDeadline(time.Now().Add(waitFor))
	var f frame
	_, raw, err := p.conn.ReadMessage()
	if err != nil {
		return f, err
	}
	require.NoError(p.t, json.Unmarshal(raw, &f))
	return f, nil
}

// expect skips frames until event arrives and decodes its data into out
func (p *wsPlayer) expect(event string, out any) {
	p.t.Helper()
	for {
		f, err := p.next()
		require.NoError(p.t, err, "waiting for %s", event)
		if f.Event != event {
			continue
		}
		if out != nil {
			require.NoError(p.t, json.Unmarshal(f.Data, out))
		}
		return
	}
}

func (p *wsPlayer) send(event string, data any) {
	p.t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(p.t, err)
	require.NoError(p.t, p.conn.WriteJSON(frame{Event: event, Data: raw}))
}

// sseStream is a test client reading an /events stream
type sseStream struct {
	t      *testing.T
	srv    *httptest.Server
	cancel context.CancelFunc
	frames chan sseFrame
	handle string
	token  string
}

type sseFrame struct {
	Event string
	Data  string
}

func openStream(t *testing.T, srv *httptest.Server) *sseStream {
	t.Helper()
	reqCtx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "stream should set the session cookie")
	require.True(t, cookie.HttpOnly)

	s := &sseStream{t: t, srv: srv, cancel: cancel, frames: make(chan sseFrame, 64)}
	t.Cleanup(s.close)
	go func() {
		defer resp.Body.Close()
		defer close(s.frames)
		reader := bufio.NewReader(resp.Body)
		var cur sseFrame
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				cur.Event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				cur.Data = strings.TrimPrefix(line, "data: ")
			case line == "":
				s.frames <- cur
				cur = sseFrame{}
			}
		}
	}()

	var h hello
	s.expect("hello", &h)
	s.handle = h.Handle
	s.token = h.Token
	require.Equal(t, cookie.Value, s.token)
	require.NotEqual(t, s.handle, s.token)
	return s
}

// post sends an action authorized by this stream's session cookie
func (s *sseStream) post(path string, body any) *http.Response {
	s.t.Helper()
	return postJSON(s.t, s.srv, path, body, &http.Cookie{Name: sessionCookie, Value: s.token})
}

func (s *sseStream) close() {
	s.cancel()
}

// expect skips frames until event arrives; ok is false when the stream ended first
func (s *sseStream) expect(event string, out any) bool {
	s.t.Helper()
	timeout := time.After(waitFor)
	for {
		select {
		case f, open := <-s.frames:
			if !open {
				return false
			}
			if f.Event != event {
				continue
			}
			if out != nil {
				require.NoError(s.t, json.Unmarshal([]byte(f.Data), out))
			}
			return true
		case <-timeout:
			s.t.Fatalf("timed out waiting for %s", event)
			return false
		}
	}
}

// postJSON sends body to path, with cookie attached when non-nil
func postJSON(t *testing.T, srv *httptest.Server, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func getState(t *testing.T, srv *httptest.Server) stateResponse {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st stateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	return st
}
