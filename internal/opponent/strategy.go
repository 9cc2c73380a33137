// internal/opponent/strategy.go
//
// Scripted opponent for vs_ai games.
// The opponent plays fair: it never reads hidden card data, only the move
// history of cards that were revealed on the table. Each decision rebuilds
// its memory from a trailing window of that history, so weaker profiles
// genuinely forget older reveals, and an epsilon roll injects deliberate
// random mistakes.
//
// Priority order, first applicable wins:
//  1. A card is face-up mid-turn and its mate's position is remembered →
//     complete the pair.
//  2. Both positions of some pair are remembered → open that pair.
//  3. With probability epsilon, play a uniformly random available card.
//  4. Prefer a card whose position was never observed (information gain).
//  5. Uniformly random available card.

package opponent

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/mkerrigan/pairup/internal/game"
)

// WindowAll is the Window sentinel meaning "consider the entire history".
const WindowAll = -1

// Profile is the sole tuning surface for opponent strength.
type Profile struct {
	Epsilon float64 // probability of a deliberately random move
	Window  int     // trailing moves remembered; WindowAll for everything
}

// profiles maps opponent difficulty to its tuning.
var profiles = map[game.Difficulty]Profile{
	game.DifficultyEasy:   {Epsilon: 0.50, Window: 6},
	game.DifficultyMedium: {Epsilon: 0.20, Window: 12},
	game.DifficultyHard:   {Epsilon: 0.05, Window: WindowAll},
}

// ProfileFor returns the profile for a difficulty, defaulting to medium.
func ProfileFor(d game.Difficulty) Profile {
	if p, ok := profiles[d]; ok {
		return p
	}
	return profiles[game.DifficultyMedium]
}

// Recall rebuilds the opponent's memory from the trailing window of move
// history: pair key → distinct observed card ids, in observation order.
func Recall(history []game.MoveRecord, window int) map[int][]int {
	if window != WindowAll && len(history) > window {
		history = history[len(history)-window:]
	}
	mem := make(map[int][]int)
	for _, mv := range history {
		ids := mem[mv.PairKey]
		seen := false
		for _, id := range ids {
			if id == mv.CardID {
				seen = true
				break
			}
		}
		if !seen {
			mem[mv.PairKey] = append(ids, mv.CardID)
		}
	}
	return mem
}

// Choose picks a card id from the snapshot under the profile's tuning.
// rng is injectable so tests can force or forbid the epsilon branch.
// Returns KindNoValidMoves when no card can be flipped.
func Choose(snap game.Snapshot, p Profile, rng *rand.Rand) (int, error) {
	mem := Recall(snap.History, p.Window)

	available := make(map[int]bool)
	var availableIDs []int
	for _, c := range snap.Cards {
		if !c.Matched && !c.Flipped {
			available[c.ID] = true
			availableIDs = append(availableIDs, c.ID)
		}
	}
	if len(availableIDs) == 0 {
		return 0, game.E(game.KindNoValidMoves, "no cards left to flip")
	}

	// Remembered positions per pair, restricted to playable cards. Pair
	// keys are visited in ascending order to keep decisions deterministic
	// when the rng never fires.
	known := make(map[int][]int)
	var knownKeys []int
	for pk, ids := range mem {
		var avail []int
		for _, id := range ids {
			if available[id] {
				avail = append(avail, id)
			}
		}
		if len(avail) > 0 {
			known[pk] = avail
			knownKeys = append(knownKeys, pk)
		}
	}
	sort.Ints(knownKeys)

	// 1) Complete the pair of the card currently face-up.
	if len(snap.CurrentFlipped) == 1 {
		if first := cardByID(snap.Cards, snap.CurrentFlipped[0]); first != nil {
			for _, id := range known[first.PairKey] {
				if id != first.ID {
					return id, nil
				}
			}
		}
	}

	// 2) Open a pair whose two positions are both remembered.
	for _, pk := range knownKeys {
		if len(known[pk]) >= 2 {
			return known[pk][0], nil
		}
	}

	// 3) Exploration / intentional mistake.
	if rng.Float64() < p.Epsilon {
		return availableIDs[rng.Intn(len(availableIDs))], nil
	}

	// 4) Prefer never-observed positions.
	observed := make(map[int]bool)
	for _, ids := range mem {
		for _, id := range ids {
			observed[id] = true
		}
	}
	var unknown []int
	for _, id := range availableIDs {
		if !observed[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return unknown[rng.Intn(len(unknown))], nil
	}

	// 5) Everything is known but unpaired; pick anything.
	return availableIDs[rng.Intn(len(availableIDs))], nil
}

func cardByID(cards []game.Card, id int) *game.Card {
	for i := range cards {
		if cards[i].ID == id {
			return &cards[i]
		}
	}
	return nil
}

// Chooser is a concurrency-safe wrapper around Choose for server use; the
// underlying rng is not safe for concurrent draws.
type Chooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewChooser seeds a Chooser from the clock.
func NewChooser() *Chooser {
	return &Chooser{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Choose picks a move for the snapshot under the given difficulty.
func (c *Chooser) Choose(snap game.Snapshot, d game.Difficulty) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Choose(snap, ProfileFor(d), c.rng)
}
