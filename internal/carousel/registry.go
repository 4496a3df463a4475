package carousel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Zachkp/gamedev-portfolio/internal/clock"
	"github.com/Zachkp/gamedev-portfolio/internal/realtime"
)

// ErrRegistryFull is returned by Acquire when the session cap is reached and
// every session has a live subscriber.
var ErrRegistryFull = errors.New("carousel registry is full")

// Session is one visitor's carousel and the hub its state changes are
// published on.
type Session[T any] struct {
	ID         string
	Controller *Controller[T]
	Hub        *realtime.Broadcaster[State]

	lastSeen time.Time
}

// Registry owns a running Controller per visitor and tears down sessions
// that go idle. Sessions exist only for visitors that interacted or
// subscribed; read-only callers use View.
type Registry[T any] struct {
	mu          sync.Mutex
	cfg         Config
	idleTTL     time.Duration
	maxSessions int
	clock       clock.Clock
	opts        []Option
	items       []T
	sessions    map[string]*Session[T]
}

// NewRegistry returns a registry whose controllers rotate items. Sessions
// unused for idleTTL and without live subscribers are released by Sweep.
func NewRegistry[T any](cfg Config, items []T, idleTTL time.Duration, opts ...Option) *Registry[T] {
	o := options{clock: clock.Real()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[T]{
		cfg:         cfg,
		idleTTL:     idleTTL,
		maxSessions: o.maxSessions,
		clock:       o.clock,
		opts:        opts,
		items:       append([]T(nil), items...),
		sessions:    make(map[string]*Session[T]),
	}
}

// Acquire returns the visitor's session, creating and starting it on first
// use. At the session cap the least recently seen session without
// subscribers is released to make room.
func (r *Registry[T]) Acquire(id string) (*Session[T], error) {
	r.mu.Lock()
	now := r.clock.Now()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		r.mu.Unlock()
		return s, nil
	}
	var evicted *Session[T]
	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		evicted = r.oldestUnwatchedLocked()
		if evicted == nil {
			r.mu.Unlock()
			return nil, ErrRegistryFull
		}
		delete(r.sessions, evicted.ID)
	}
	s := r.newSessionLocked(id, now)
	r.mu.Unlock()
	if evicted != nil {
		evicted.teardown()
	}
	return s, nil
}

func (r *Registry[T]) newSessionLocked(id string, now time.Time) *Session[T] {
	hub := realtime.NewBroadcaster[State]()
	opts := append(append([]Option(nil), r.opts...), WithOnChange(hub.Publish))
	s := &Session[T]{
		ID:         id,
		Controller: New(r.items, r.cfg, opts...),
		Hub:        hub,
		lastSeen:   now,
	}
	r.sessions[id] = s
	s.Controller.Start()
	return s
}

func (r *Registry[T]) oldestUnwatchedLocked() *Session[T] {
	var oldest *Session[T]
	for _, s := range r.sessions {
		if s.Hub.Subscribers() > 0 {
			continue
		}
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldest = s
		}
	}
	return oldest
}

// View returns the visitor's state and items without creating a session.
// A visitor without one sees the state a new session starts in.
func (r *Registry[T]) View(id string) (State, []T) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		s.lastSeen = r.clock.Now()
	}
	items := r.items
	r.mu.Unlock()
	if ok {
		return s.Controller.State(), s.Controller.Items()
	}
	return State{Len: len(items), Playing: len(items) > 0}, append([]T(nil), items...)
}

// Lookup returns an existing session without creating one.
func (r *Registry[T]) Lookup(id string) (*Session[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.lastSeen = r.clock.Now()
	}
	return s, ok
}

// Release stops the visitor's controller and closes its hub.
func (r *Registry[T]) Release(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.teardown()
	}
}

// SetItems replaces the items of every session and of sessions created
// later.
func (r *Registry[T]) SetItems(items []T) {
	r.mu.Lock()
	r.items = append([]T(nil), items...)
	sessions := make([]*Session[T], 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()
	for _, s := range sessions {
		s.Controller.SetItems(items)
	}
}

// Items returns the items new sessions start with.
func (r *Registry[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.items...)
}

// Sweep releases sessions idle since before now-idleTTL that nobody is
// watching. It returns how many were released.
func (r *Registry[T]) Sweep(now time.Time) int {
	r.mu.Lock()
	var expired []*Session[T]
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) <= r.idleTTL || s.Hub.Subscribers() > 0 {
			continue
		}
		expired = append(expired, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	for _, s := range expired {
		s.teardown()
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then closes the registry.
func (r *Registry[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-ticker.C:
			r.Sweep(r.clock.Now())
		}
	}
}

// Close releases every session.
func (r *Registry[T]) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session[T])
	r.mu.Unlock()
	for _, s := range sessions {
		s.teardown()
	}
}

// Len reports the number of live sessions.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (s *Session[T]) teardown() {
	s.Controller.Stop()
	s.Hub.Close()
}
