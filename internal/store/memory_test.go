package store

import (
	"context"
	"testing"
	"time"

	"github.com/mkerrigan/pairup/internal/game"
)

type noSprites struct{}

func (noSprites) Creature(_ context.Context, id int) (string, string) { return "x", "" }

type silentJudge struct{}

func (silentJudge) MatchLine(context.Context, game.MatchInfo) string { return "" }
func (silentJudge) MissLine(context.Context, game.MissInfo) string   { return "" }
func (silentJudge) RoastLine(context.Context, game.RoastInfo) string { return "" }

func testGame(t *testing.T, id string) *game.Game {
	t.Helper()
	g, err := game.New(context.Background(), game.Config{
		ID:         id,
		Difficulty: game.DifficultyEasy,
		Theme:      game.ThemeEmoji,
		Seed:       "store-test",
		Mode:       game.ModeSolo,
	}, noSprites{}, silentJudge{})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(0)

	g := testGame(t, "abc")
	if err := st.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != g {
		t.Fatal("Get returned a different game instance")
	}
}

func TestGetUnknownID(t *testing.T) {
	st := NewMemoryStore(0)
	_, err := st.Get(context.Background(), "missing")
	if game.KindOf(err) != game.KindGameNotFound {
		t.Fatalf("got %v, want game not found", err)
	}
}

func TestEvictIdleKeepsRecentlyTouched(t *testing.T) {
	ctx := context.Background()
	m := &memory{games: make(map[string]*entry), ttl: time.Hour}

	stale := testGame(t, "stale")
	fresh := testGame(t, "fresh")
	_ = m.Save(ctx, stale)
	_ = m.Save(ctx, fresh)
	m.games["stale"].lastSeen = time.Now().Add(-2 * time.Hour)

	m.evictIdle(time.Now().Add(-m.ttl))

	if _, err := m.Get(ctx, "stale"); game.KindOf(err) != game.KindGameNotFound {
		t.Fatalf("stale game survived eviction: %v", err)
	}
	if _, err := m.Get(ctx, "fresh"); err != nil {
		t.Fatalf("fresh game evicted: %v", err)
	}
}

func TestGetRefreshesLastSeen(t *testing.T) {
	ctx := context.Background()
	m := &memory{games: make(map[string]*entry), ttl: time.Hour}
	_ = m.Save(ctx, testGame(t, "busy"))
	m.games["busy"].lastSeen = time.Now().Add(-2 * time.Hour)

	// A lookup counts as activity, so the next sweep keeps the game.
	if _, err := m.Get(ctx, "busy"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	m.evictIdle(time.Now().Add(-m.ttl))
	if _, err := m.Get(ctx, "busy"); err != nil {
		t.Fatalf("recently fetched game evicted: %v", err)
	}
}
