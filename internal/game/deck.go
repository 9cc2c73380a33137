// internal/game/deck.go
//
// Card Deck Builder.
// Responsibilities:
//   - Sample distinct pair identities from a theme pool (or the sprite
//     provider's Pokédex range) without replacement.
//   - Emit two cards per identity with a shared pair key and sequential ids
//     assigned before the shuffle.
//   - Deterministic output for a given (seed, theme, pairs) triple, which is
//     what makes the daily challenge reproducible across processes.

package game

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// SpriteSource resolves a numeric creature identity to display data. It
// never fails: implementations substitute a generic name and a static
// sprite URL when the upstream provider is unreachable.
type SpriteSource interface {
	Creature(ctx context.Context, id int) (name, image string)
}

// SeedSource converts a seed string into a deterministic rand source.
// SHA-256 of the seed, first 8 bytes as the source seed; the same scheme
// the daily challenge uses to turn a date into a stable index.
func SeedSource(seed string) rand.Source {
	sum := sha256.Sum256([]byte(seed))
	n := binary.BigEndian.Uint64(sum[:8])
	return rand.NewSource(int64(n & 0x7fffffffffffffff))
}

// BuildDeck produces a shuffled deck of 2*pairs cards for the theme.
// rng drives both identity sampling and the shuffle, so a seeded rng yields
// a bit-identical deck. Returns KindInsufficientPool when the theme pool
// cannot supply the requested pair count.
func BuildDeck(ctx context.Context, theme Theme, pairs int, rng *rand.Rand, sprites SpriteSource) ([]Card, error) {
	if pairs <= 0 {
		return nil, E(KindInsufficientPool, "pair count must be positive")
	}

	var cards []Card
	switch theme {
	case ThemePokemon:
		if pairs > pokedexPoolSize {
			return nil, E(KindInsufficientPool,
				fmt.Sprintf("pokemon pool has %d identities, need %d", pokedexPoolSize, pairs))
		}
		for i, id := range samplePokedex(rng, pairs) {
			name, image := sprites.Creature(ctx, id)
			cards = append(cards,
				Card{ID: i * 2, PairKey: id, Name: name, Image: image},
				Card{ID: i*2 + 1, PairKey: id, Name: name, Image: image},
			)
		}
	case ThemeEmoji:
		glyphs, err := sampleGlyphs(rng, emojiPool, pairs)
		if err != nil {
			return nil, err
		}
		for i, g := range glyphs {
			name := "Emoji " + g
			cards = append(cards,
				Card{ID: i * 2, PairKey: emojiPairBase + i, Name: name, Emoji: g},
				Card{ID: i*2 + 1, PairKey: emojiPairBase + i, Name: name, Emoji: g},
			)
		}
	case ThemeFlags:
		glyphs, err := sampleGlyphs(rng, flagPool, pairs)
		if err != nil {
			return nil, err
		}
		for i, g := range glyphs {
			name := "Flag " + g
			cards = append(cards,
				Card{ID: i * 2, PairKey: flagPairBase + i, Name: name, Emoji: g},
				Card{ID: i*2 + 1, PairKey: flagPairBase + i, Name: name, Emoji: g},
			)
		}
	default:
		return nil, E(KindInsufficientPool, fmt.Sprintf("unknown theme %q", theme))
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards, nil
}

// samplePokedex draws n distinct Pokédex ids from 1..pokedexPoolSize.
func samplePokedex(rng *rand.Rand, n int) []int {
	perm := rng.Perm(pokedexPoolSize)
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		ids[i] = perm[i] + 1
	}
	return ids
}

// sampleGlyphs draws n distinct glyphs from pool without replacement.
func sampleGlyphs(rng *rand.Rand, pool []string, n int) ([]string, error) {
	if n > len(pool) {
		return nil, E(KindInsufficientPool,
			fmt.Sprintf("theme pool has %d glyphs, need %d", len(pool), n))
	}
	perm := rng.Perm(len(pool))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pool[perm[i]]
	}
	return out, nil
}
