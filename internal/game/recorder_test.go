package game

import (
	"sync"

	"github.com/aaronzipp/black-and-white/internal/models"
)

// sent is one recorded delivery. To is "*" for broadcasts, "!h" for
// broadcasts excluding h, otherwise the target handle.
type sent struct {
	To      string
	Event   string
	Payload any
}

type recorder struct {
	mu     sync.Mutex
	events []sent
}

func (r *recorder) Broadcast(event string, payload any) {
	r.add(sent{To: "*", Event: event, Payload: payload})
}

func (r *recorder) BroadcastExcept(handle, event string, payload any) {
	r.add(sent{To: "!" + handle, Event: event, Payload: payload})
}

func (r *recorder) Send(handle, event string, payload any) {
	r.add(sent{To: handle, Event: event, Payload: payload})
}

func (r *recorder) add(s sent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, s)
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *recorder) all() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sent(nil), r.events...)
}

func (r *recorder) named(event string) []sent {
	var out []sent
	for _, s := range r.all() {
		if s.Event == event {
			out = append(out, s)
		}
	}
	return out
}

func (r *recorder) last(event string) (sent, bool) {
	matches := r.named(event)
	if len(matches) == 0 {
		return sent{}, false
	}
	return matches[len(matches)-1], true
}

func newTable(handles ...string) (*Registry, *recorder) {
	rec := &recorder{}
	reg := NewRegistry(rec)
	for _, h := range handles {
		if _, err := reg.Connect(h); err != nil {
			panic(err)
		}
	}
	return reg, rec
}

func carry(on bool) models.GameOptions {
	return models.GameOptions{CarryOver: on}
}
