package game

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

// fakeSprites resolves ids locally so deck tests never touch the network.
type fakeSprites struct{}

func (fakeSprites) Creature(_ context.Context, id int) (string, string) {
	return fmt.Sprintf("Pokemon %d", id), fmt.Sprintf("https://img.test/%d.png", id)
}

func buildTestDeck(t *testing.T, theme Theme, pairs int, seed string) []Card {
	t.Helper()
	rng := rand.New(SeedSource(seed))
	cards, err := BuildDeck(context.Background(), theme, pairs, rng, fakeSprites{})
	if err != nil {
		t.Fatalf("BuildDeck(%s, %d): %v", theme, pairs, err)
	}
	return cards
}

func TestBuildDeckPairInvariants(t *testing.T) {
	for _, theme := range []Theme{ThemePokemon, ThemeEmoji, ThemeFlags} {
		for _, pairs := range []int{6, 8, 12} {
			cards := buildTestDeck(t, theme, pairs, "invariants")
			if len(cards) != 2*pairs {
				t.Fatalf("%s/%d: got %d cards, want %d", theme, pairs, len(cards), 2*pairs)
			}

			byKey := make(map[int]int)
			ids := make(map[int]bool)
			for _, c := range cards {
				byKey[c.PairKey]++
				if ids[c.ID] {
					t.Fatalf("%s/%d: duplicate card id %d", theme, pairs, c.ID)
				}
				ids[c.ID] = true
				if c.ID < 0 || c.ID >= 2*pairs {
					t.Fatalf("%s/%d: card id %d out of range", theme, pairs, c.ID)
				}
				if c.Flipped || c.Matched {
					t.Fatalf("%s/%d: new card %d not face-down", theme, pairs, c.ID)
				}
			}
			for key, n := range byKey {
				if n != 2 {
					t.Fatalf("%s/%d: pair key %d appears %d times, want 2", theme, pairs, key, n)
				}
			}
		}
	}
}

func TestBuildDeckThemePayloads(t *testing.T) {
	for _, c := range buildTestDeck(t, ThemeEmoji, 6, "payloads") {
		if c.Emoji == "" || c.Image != "" {
			t.Fatalf("emoji card %d: emoji=%q image=%q", c.ID, c.Emoji, c.Image)
		}
		if c.PairKey < emojiPairBase || c.PairKey >= flagPairBase {
			t.Fatalf("emoji card %d: pair key %d outside emoji namespace", c.ID, c.PairKey)
		}
	}
	for _, c := range buildTestDeck(t, ThemeFlags, 6, "payloads") {
		if c.Emoji == "" || c.Image != "" {
			t.Fatalf("flag card %d: emoji=%q image=%q", c.ID, c.Emoji, c.Image)
		}
		if c.PairKey < flagPairBase {
			t.Fatalf("flag card %d: pair key %d outside flag namespace", c.ID, c.PairKey)
		}
	}
	for _, c := range buildTestDeck(t, ThemePokemon, 6, "payloads") {
		if c.Image == "" || c.Emoji != "" {
			t.Fatalf("pokemon card %d: image=%q emoji=%q", c.ID, c.Image, c.Emoji)
		}
		if c.PairKey < 1 || c.PairKey > pokedexPoolSize {
			t.Fatalf("pokemon card %d: pair key %d outside pokédex range", c.ID, c.PairKey)
		}
	}
}

func TestBuildDeckSeedDeterminism(t *testing.T) {
	for _, theme := range []Theme{ThemePokemon, ThemeEmoji, ThemeFlags} {
		a := buildTestDeck(t, theme, 8, "2026-08-30-medium-"+string(theme))
		b := buildTestDeck(t, theme, 8, "2026-08-30-medium-"+string(theme))
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: same seed produced different decks", theme)
		}
	}
}

func TestBuildDeckInsufficientPool(t *testing.T) {
	rng := rand.New(SeedSource("overflow"))
	cases := []struct {
		theme Theme
		pairs int
	}{
		{ThemeFlags, len(flagPool) + 1},
		{ThemeEmoji, len(emojiPool) + 1},
		{ThemePokemon, pokedexPoolSize + 1},
		{ThemeEmoji, 0},
	}
	for _, tc := range cases {
		_, err := BuildDeck(context.Background(), tc.theme, tc.pairs, rng, fakeSprites{})
		if KindOf(err) != KindInsufficientPool {
			t.Fatalf("%s/%d: got %v, want insufficient pool error", tc.theme, tc.pairs, err)
		}
	}
}
