// Package session keeps projects in memory between HTTP requests.
//
// Each [Session] owns one project: its state, the drag controller and the
// try-on guard. Every change to a session goes through its mutex, so a
// project has a single writer even when requests race. Sessions expire
// after a period of inactivity; nothing is persisted.
//
//	store := session.NewMemoryStore(session.DefaultTTL)
//	sess := store.Create()
//	st, err := sess.Update(func(s project.State) (project.State, error) {
//	    return s.SelectZone(garment.Heart)
//	})
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/furiarock/mockstudio/pkg/compose"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/placement"
	"github.com/furiarock/mockstudio/pkg/project"
	"github.com/furiarock/mockstudio/pkg/tryon"
)

// DefaultTTL is how long an idle session lives.
const DefaultTTL = 2 * time.Hour

// Session is one in-memory project.
type Session struct {
	ID        string
	CreatedAt time.Time

	// Guard admits one try-on at a time for this project.
	Guard tryon.Guard

	mu        sync.Mutex
	state     project.State
	drag      placement.Controller
	expiresAt time.Time
}

// Snapshot returns the current project state.
func (s *Session) Snapshot() project.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update replaces the state with fn's result. If fn fails the state is
// left unchanged.
func (s *Session) Update(fn func(project.State) (project.State, error)) (project.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	s.state = next
	return next, nil
}

// Reset starts a new project in the same session. Any drag in progress is
// dropped.
func (s *Session) Reset() project.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = project.New()
	s.drag = placement.Controller{}
	return s.state
}

// PointerKind names a pointer event.
type PointerKind string

const (
	PointerDown  PointerKind = "down"
	PointerMove  PointerKind = "move"
	PointerUp    PointerKind = "up"
	PointerLeave PointerKind = "leave"
)

// PointerEvent is a pointer event in garment unit space.
type PointerEvent struct {
	Kind PointerKind `json:"type"`
	X    float64     `json:"x"`
	Y    float64     `json:"y"`
}

// Pointer feeds ev to the drag controller and applies any resulting move.
// It returns the state and the controller state after the event.
//
// A drag can only start on the selected zone's artwork while that zone is
// on screen and the garment is not in comparison mode.
func (s *Session) Pointer(ev PointerEvent) (project.State, placement.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pt := placement.Point{X: ev.X, Y: ev.Y}
	switch ev.Kind {
	case PointerDown:
		l := s.state.SelectedLayer()
		if !s.state.Comparing && garment.Lookup(l.Zone).View == s.state.View {
			s.drag.PointerDown(l, s.state.SelectedZone, compose.Place(l), pt)
		}
	case PointerMove:
		if p, ok := s.drag.PointerMove(pt); ok {
			next, err := s.state.UpdateLayer(s.drag.Zone(), p)
			if err != nil {
				return s.state, s.drag.State(), err
			}
			s.state = next
		}
	case PointerUp:
		s.drag.PointerUp()
	case PointerLeave:
		s.drag.PointerLeave()
	default:
		return s.state, s.drag.State(), errors.New(errors.ErrCodeInvalidInput, "unknown pointer event %q", ev.Kind)
	}
	return s.state, s.drag.State(), nil
}

func (s *Session) expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.expiresAt)
}

func (s *Session) touch(now time.Time, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = now.Add(ttl)
}

// MemoryStore holds sessions in a map. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns an empty store whose sessions live ttl past their
// last access. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session with a fresh project.
func (m *MemoryStore) Create() *Session {
	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		state:     project.New(),
		expiresAt: now.Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Get returns the session for id and extends its lifetime. Unknown and
// expired sessions fail with SESSION_NOT_FOUND.
func (m *MemoryStore) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	now := m.now()
	if !ok || sess.expired(now) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "project %q not found or expired", id)
	}
	sess.touch(now, m.ttl)
	return sess, nil
}

// Delete removes the session for id.
func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Cleanup removes expired sessions and returns how many were removed.
func (m *MemoryStore) Cleanup() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, sess := range m.sessions {
		if sess.expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor calls Cleanup every interval until ctx is done.
func (m *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration, onClean func(removed int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Cleanup(); n > 0 && onClean != nil {
				onClean(n)
			}
		}
	}
}
