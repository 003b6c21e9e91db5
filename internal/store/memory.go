// internal/store/memory.go
//
// In-memory session registry. Each browser session owns exactly one
// *game.Game; "new game" replaces the session's game wholesale.
//
// Characteristics:
//   - Sessions are keyed by the session cookie ID.
//   - The registry map is guarded by an RWMutex; each Session carries its
//     own mutex so events for one session are applied one at a time to
//     completion, while independent sessions never contend.
//   - State is lost when the process restarts (no persistence by design).

package store

import (
	"sync"

	"github.com/hadlow/wordlet/internal/game"
)

// Session owns one game and serializes event application to it.
type Session struct {
	ID string

	mu   sync.Mutex
	game *game.Game
}

// Update applies a single event to the session's game while holding the
// session lock. fn must not retain the *game.Game beyond the call.
func (s *Session) Update(fn func(g *game.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// Reset replaces the session's game with a fresh one and returns its ID.
// An empty withTarget draws a random target. This is the only way out of
// the finished state.
func (s *Session) Reset(withTarget string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = game.New(withTarget)
	return s.game.ID
}

// Store is the registry of active sessions. Implementations may be backed
// by memory (this package) or anything else that can hand out Sessions.
type Store interface {
	// GetOrCreate returns the session for id, creating it (with a fresh
	// game) if it does not exist yet.
	GetOrCreate(id string) *Session

	// Get returns the session for id, if present.
	Get(id string) (*Session, bool)

	// Len reports the number of live sessions.
	Len() int
}

// memory is the map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &Session{ID: id, game: game.New("")}
	m.sessions[id] = s
	return s
}

func (m *memory) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
