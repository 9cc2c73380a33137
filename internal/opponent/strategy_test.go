package opponent

import (
	"math/rand"
	"testing"

	"github.com/mkerrigan/pairup/internal/game"
)

// board builds a 4-pair test board: pair key 100+i on ids (2i, 2i+1).
func board() []game.Card {
	var cards []game.Card
	for i := 0; i < 4; i++ {
		name := string(rune('A' + i))
		cards = append(cards,
			game.Card{ID: 2 * i, PairKey: 100 + i, Name: name},
			game.Card{ID: 2*i + 1, PairKey: 100 + i, Name: name},
		)
	}
	return cards
}

func record(n, cardID, pairKey int, who game.Player) game.MoveRecord {
	return game.MoveRecord{CardID: cardID, PairKey: pairKey, MoveNumber: n, Player: who}
}

func TestChooseCompletesFaceUpPair(t *testing.T) {
	cards := board()
	cards[0].Flipped = true // id 0 (pair 100) is on the table mid-turn
	snap := game.Snapshot{
		Cards: cards,
		History: []game.MoveRecord{
			record(1, 1, 100, game.Player1), // mate's position was revealed earlier
			record(2, 4, 102, game.Player1),
			record(3, 0, 100, game.Player2), // the flip that is now face-up
		},
		CurrentFlipped: []int{0},
	}

	// Completing a known pair outranks the epsilon roll, so this holds for
	// every profile and every rng state.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		got, err := Choose(snap, ProfileFor(game.DifficultyHard), rng)
		if err != nil {
			t.Fatalf("Choose: %v", err)
		}
		if got != 1 {
			t.Fatalf("trial %d: chose %d, want known mate 1", i, got)
		}
	}
}

func TestChooseOpensFullyKnownPair(t *testing.T) {
	snap := game.Snapshot{
		Cards: board(),
		History: []game.MoveRecord{
			record(1, 2, 101, game.Player1),
			record(2, 3, 101, game.Player1), // both positions of pair 101 seen
		},
	}
	rng := rand.New(rand.NewSource(2))
	got, err := Choose(snap, Profile{Epsilon: 0, Window: WindowAll}, rng)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if got != 2 && got != 3 {
		t.Fatalf("chose %d, want a card of the fully known pair", got)
	}
}

func TestChoosePrefersUnobservedPositions(t *testing.T) {
	snap := game.Snapshot{
		Cards: board(),
		History: []game.MoveRecord{
			record(1, 0, 100, game.Player1),
			record(2, 2, 101, game.Player1), // singles only, no complete pair
		},
	}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		got, err := Choose(snap, Profile{Epsilon: 0, Window: WindowAll}, rng)
		if err != nil {
			t.Fatalf("Choose: %v", err)
		}
		if got == 0 || got == 2 {
			t.Fatalf("trial %d: chose observed card %d instead of exploring", i, got)
		}
	}
}

func TestChooseEpsilonForcesRandomMove(t *testing.T) {
	snap := game.Snapshot{
		Cards: board(),
		History: []game.MoveRecord{
			record(1, 0, 100, game.Player1),
		},
	}
	// Epsilon 1.0 always takes the exploration branch; any available card
	// (including the observed one) is legal.
	rng := rand.New(rand.NewSource(4))
	seenObserved := false
	for i := 0; i < 500; i++ {
		got, err := Choose(snap, Profile{Epsilon: 1.0, Window: WindowAll}, rng)
		if err != nil {
			t.Fatalf("Choose: %v", err)
		}
		if got < 0 || got > 7 {
			t.Fatalf("chose nonexistent card %d", got)
		}
		if got == 0 {
			seenObserved = true
		}
	}
	if !seenObserved {
		t.Fatal("uniform exploration never picked the observed card in 500 trials")
	}
}

func TestWindowBoundsForgetOldReveals(t *testing.T) {
	snap := game.Snapshot{
		Cards: board(),
		History: []game.MoveRecord{
			record(1, 2, 101, game.Player1), // pair 101 fully revealed...
			record(2, 3, 101, game.Player1),
			record(3, 4, 102, game.Player1), // ...then pushed out of the window
			record(4, 6, 103, game.Player1),
		},
	}
	rng := rand.New(rand.NewSource(5))

	// Full history: the complete pair is remembered and opened.
	got, err := Choose(snap, Profile{Epsilon: 0, Window: WindowAll}, rng)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if got != 2 && got != 3 {
		t.Fatalf("unbounded window chose %d, want pair 101", got)
	}

	// Window of 2: only the two latest singles are remembered, so the
	// strategy explores cards it has never observed in-window.
	for i := 0; i < 100; i++ {
		got, err := Choose(snap, Profile{Epsilon: 0, Window: 2}, rng)
		if err != nil {
			t.Fatalf("Choose: %v", err)
		}
		if got == 4 || got == 6 {
			t.Fatalf("trial %d: chose in-window observed card %d", i, got)
		}
	}
}

func TestChooseNoValidMoves(t *testing.T) {
	cards := board()
	for i := range cards {
		cards[i].Matched = true
		cards[i].Flipped = true
	}
	_, err := Choose(game.Snapshot{Cards: cards}, ProfileFor(game.DifficultyEasy), rand.New(rand.NewSource(6)))
	if game.KindOf(err) != game.KindNoValidMoves {
		t.Fatalf("got %v, want no valid moves", err)
	}
}

func TestProfileForDefaultsToMedium(t *testing.T) {
	if p := ProfileFor("nightmare"); p != profiles[game.DifficultyMedium] {
		t.Fatalf("unknown difficulty got %+v", p)
	}
	if p := ProfileFor(game.DifficultyHard); p.Epsilon != 0.05 || p.Window != WindowAll {
		t.Fatalf("hard profile %+v", p)
	}
}

func TestRecallDeduplicatesObservations(t *testing.T) {
	history := []game.MoveRecord{
		record(1, 0, 100, game.Player1),
		record(2, 0, 100, game.Player2), // same card seen twice
		record(3, 1, 100, game.Player1),
	}
	mem := Recall(history, WindowAll)
	if len(mem[100]) != 2 {
		t.Fatalf("pair 100 remembered ids %v, want two distinct", mem[100])
	}
}

func TestMemorySummaryTopPairsFirst(t *testing.T) {
	snap := game.Snapshot{
		Cards: board(),
		History: []game.MoveRecord{
			record(1, 2, 101, game.Player1),
			record(2, 3, 101, game.Player1),
			record(3, 0, 100, game.Player1),
		},
	}
	got := MemorySummary(snap, Profile{Epsilon: 0, Window: WindowAll})
	if len(got) != 2 {
		t.Fatalf("summary length %d, want 2", len(got))
	}
	if got[0].PairKey != 101 || got[0].Seen != 2 {
		t.Fatalf("strongest memory %+v, want pair 101 seen twice", got[0])
	}
	if got[1].PairKey != 100 || got[1].Seen != 1 {
		t.Fatalf("second memory %+v", got[1])
	}
	if got[0].Name != "B" {
		t.Fatalf("summary name %q, want card display name", got[0].Name)
	}
}
