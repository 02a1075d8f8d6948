package resolution

import (
	"context"
	"sync"
)

// Tracker lets a newer request of a session supersede the one in flight.
// Each Begin cancels the previous request's context and bumps the session's
// generation; only the newest ticket stays current.
type Tracker struct {
	mu       sync.Mutex
	seq      uint64
	sessions map[string]*generation
}

type generation struct {
	id     uint64
	cancel context.CancelFunc
}

// Ticket identifies one tracked request. A nil Ticket is always current.
type Ticket struct {
	tracker *Tracker
	session string
	id      uint64
	cancel  context.CancelFunc
}

func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]*generation)}
}

// Begin registers a request for session. An empty session is not tracked.
func (t *Tracker) Begin(ctx context.Context, session string) (context.Context, *Ticket) {
	if t == nil || session == "" {
		return ctx, nil
	}

	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.sessions[session]; ok {
		prev.cancel()
	}
	t.seq++
	t.sessions[session] = &generation{id: t.seq, cancel: cancel}

	return ctx, &Ticket{tracker: t, session: session, id: t.seq, cancel: cancel}
}

// Current reports whether no newer request of the session has begun.
func (tk *Ticket) Current() bool {
	if tk == nil {
		return true
	}
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	g, ok := tk.tracker.sessions[tk.session]
	return ok && g.id == tk.id
}

// Done releases the ticket. It must be called once the request finishes.
func (tk *Ticket) Done() {
	if tk == nil {
		return
	}
	tk.cancel()

	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	if g, ok := tk.tracker.sessions[tk.session]; ok && g.id == tk.id {
		delete(tk.tracker.sessions, tk.session)
	}
}

// Len returns the number of sessions with a request in flight.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
