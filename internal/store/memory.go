// internal/store/memory.go
//
// In-memory registry of active games.
// Characteristics:
//   - Stores *game.Game keyed by ID in a map behind an RWMutex.
//   - Tracks last access per entry; an optional reaper goroutine evicts
//     games idle longer than the configured TTL (zero TTL disables it).
//   - State is lost when the process restarts; that is the design.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mkerrigan/pairup/internal/game"
)

// Store is the registry interface the serving layer depends on.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save registers or refreshes a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or KindGameNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)
}

// entry wraps a game with its last-access timestamp.
type entry struct {
	game     *game.Game
	lastSeen time.Time
}

// memory is the map-backed Store.
type memory struct {
	mu    sync.RWMutex
	games map[string]*entry
	ttl   time.Duration
}

// NewMemoryStore constructs an in-memory Store. A positive ttl starts a
// background reaper that drops games untouched for longer than ttl.
func NewMemoryStore(ttl time.Duration) Store {
	m := &memory{games: make(map[string]*entry), ttl: ttl}
	if ttl > 0 {
		go m.reap(ttl / 2)
	}
	return m
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID()] = &entry{game: g, lastSeen: time.Now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.games[id]; ok {
		e.lastSeen = time.Now()
		return e.game, nil
	}
	return nil, game.E(game.KindGameNotFound, "game not found")
}

// reap periodically evicts idle games.
func (m *memory) reap(interval time.Duration) {
	if interval < time.Second {
		interval = time.Second
	}
	for range time.Tick(interval) {
		m.evictIdle(time.Now().Add(-m.ttl))
	}
}

// evictIdle drops every game last touched before cutoff.
func (m *memory) evictIdle(cutoff time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.games {
		if e.lastSeen.Before(cutoff) {
			delete(m.games, id)
			log.Info().Str("gameId", id).Msg("evicted idle game")
		}
	}
}
