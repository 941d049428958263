// internal/store/memory.go
//
// In-memory store of hosted game sessions.
//
// Characteristics:
//   - Stores *Entry values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Entry carries its own mutex, so play on one game never blocks
//     another and every Session is touched by one goroutine at a time.
//   - State is lost when the process restarts.
//   - Idle entries are dropped by Sweep. An entry in use is never swept, and
//     a removed entry refuses further use with ErrNotFound.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordall/internal/game"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Entry is one hosted game: its owner and its private Session.
type Entry struct {
	ID    string
	Owner string

	mu      sync.Mutex
	session *game.Session
	touched time.Time
	gone    bool // removed from its store
}

// NewEntry wraps s for storage.
func NewEntry(id, owner string, s *game.Session, now time.Time) *Entry {
	return &Entry{ID: id, Owner: owner, session: s, touched: now}
}

// With runs fn with exclusive access to the entry's session and marks the
// entry as used at now. It returns ErrNotFound once the entry has been
// deleted or swept.
func (e *Entry) With(now time.Time, fn func(s *game.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return ErrNotFound
	}
	e.touched = now
	return fn(e.session)
}

// Touched reports when the entry was last used.
func (e *Entry) Touched() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touched
}

// Store defines the storage interface for hosted games.
type Store interface {
	// Save adds or replaces an entry.
	Save(ctx context.Context, e *Entry) error

	// Get retrieves an entry by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes an entry. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep removes entries not used since cutoff and returns how many.
	Sweep(ctx context.Context, cutoff time.Time) int

	// Len returns the number of stored entries.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games map
	games map[string]*Entry // keyed by Entry.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*Entry)}
}

func (m *memory) Save(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[e.ID] = e
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

// Delete unlinks the entry first and only then waits for it, so a game
// busy in With never holds up the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if ok {
		e.mu.Lock()
		e.gone = true
		e.mu.Unlock()
	}
	return nil
}

// Sweep skips entries that are busy in With; they are in use, so not idle.
// The staleness check and the removal happen under the entry's lock, which
// keeps a concurrent With from landing on an entry that is being dropped.
func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if !e.mu.TryLock() {
			continue
		}
		if e.touched.Before(cutoff) {
			e.gone = true
			delete(m.games, id)
			n++
		}
		e.mu.Unlock()
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
