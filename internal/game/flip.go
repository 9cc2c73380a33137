// internal/game/flip.go
//
// Flip Resolution Engine: the transition function applied on each flip.
// Per game the cycle is idle (0 face-up) → one up → resolve → idle.
// A mismatch leaves both cards face-up for the client's display pause; they
// go face-down again only through an explicit ResetUnmatched call, but the
// pending pair is cleared immediately so the next turn can start.

package game

import "context"

// FlipResult is the typed outcome of an accepted flip. Exactly one of the
// two shapes is populated: Card for a first-of-the-turn reveal, or
// Match/Cards/GameWon for a resolved pair.
type FlipResult struct {
	Resolved bool `json:"resolved"`

	// First-card reveal.
	Card *CardView `json:"card,omitempty"`

	// Resolution.
	Match   bool       `json:"match"`
	Cards   []CardView `json:"cards,omitempty"`
	GameWon bool       `json:"game_won"`

	Moves      int    `json:"moves"`
	Matches    int    `json:"matches"`
	Player     Player `json:"player"`
	NextPlayer Player `json:"next_player"`
	Commentary string `json:"commentary"`

	Scores Scoreboard `json:"scores"`
}

// Flip applies one card flip for the given seat.
//
// Rejections (no state is mutated):
//   - KindInvalidPlayerForMode: player2 acting in a solo game.
//   - KindNotYourTurn: seat is not the current turn holder (non-solo).
//   - KindInvalidCard: unknown id, already matched, or already face-up.
//
// On the second face-up card the pair is resolved: scoring, streaks, turn
// alternation and commentary triggers all happen here. Turn alternates
// after every resolved pair in non-solo modes regardless of outcome; a
// match deliberately does not grant an extra turn.
func (g *Game) Flip(ctx context.Context, cardID int, seat Player) (*FlipResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.mode == ModeSolo && seat != Player1 {
		return nil, E(KindInvalidPlayerForMode, "solo games have a single seat")
	}
	if g.mode != ModeSolo && seat != g.currentPlayer {
		return nil, E(KindNotYourTurn, "it is not your turn")
	}

	card := g.findCard(cardID)
	if card == nil || card.Matched || card.Flipped {
		return nil, E(KindInvalidCard, "invalid card")
	}

	card.Flipped = true
	g.currentFlipped = append(g.currentFlipped, card.ID)
	g.history = append(g.history, MoveRecord{
		CardID:     card.ID,
		PairKey:    card.PairKey,
		Name:       card.Name,
		MoveNumber: len(g.history) + 1,
		Player:     seat,
	})

	if len(g.currentFlipped) < 2 {
		view := maskCard(*card)
		return &FlipResult{
			Card:       &view,
			Player:     seat,
			NextPlayer: g.currentPlayer,
			Moves:      g.moves,
			Matches:    g.matches,
			Scores:     g.scoreboardLocked(),
		}, nil
	}

	return g.resolveLocked(ctx, seat)
}

// resolveLocked settles the two pending cards. Caller holds g.mu.
func (g *Game) resolveLocked(ctx context.Context, seat Player) (*FlipResult, error) {
	first := g.findCard(g.currentFlipped[0])
	second := g.findCard(g.currentFlipped[1])

	g.moves++
	stats := g.seat(seat)
	stats.Attempts++

	res := &FlipResult{
		Resolved: true,
		Player:   seat,
	}

	if first.PairKey == second.PairKey {
		first.Matched = true
		second.Matched = true
		g.matches++
		stats.PairsWon++
		stats.Streak++
		// Streak bonus: consecutive self-matches score 1, 2, 3, ...
		stats.Score += 1 + max(0, stats.Streak-1)
		g.best = max(g.best, max(g.seat1.Streak, g.seat2.Streak))
		res.Match = true
		res.GameWon = g.matches == g.pairs

		if g.matches%commentaryFrequency == 0 || g.matches == g.pairs {
			line := g.judge.MatchLine(ctx, MatchInfo{
				Pairs:   g.pairs,
				Moves:   g.moves,
				Matches: g.matches,
				Won:     res.GameWon,
			})
			if line != "" {
				res.Commentary = line
				g.commentary = append(g.commentary, CommentaryEntry{
					Text: line, Type: "match", Player: seat, Move: g.moves,
				})
			}
		}
	} else {
		mistake := first.Name + "-" + second.Name
		g.mistakes = append(g.mistakes, mistake)
		stats.Streak = 0

		// Miss lines key off the cumulative move counter, not miss count.
		if g.moves%commentaryFrequency == 0 {
			line := g.judge.MissLine(ctx, MissInfo{
				Pairs:       g.pairs,
				Moves:       g.moves,
				LastMistake: mistake,
				Repeats:     countOf(g.mistakes, mistake),
			})
			if line != "" {
				res.Commentary = line
				g.commentary = append(g.commentary, CommentaryEntry{
					Text: line, Type: "miss", Player: seat, Move: g.moves,
				})
			}
		}
	}

	g.currentFlipped = g.currentFlipped[:0]
	if g.mode != ModeSolo {
		g.currentPlayer = seat.Other()
	}

	res.Cards = []CardView{maskCard(*first), maskCard(*second)}
	res.Moves = g.moves
	res.Matches = g.matches
	res.NextPlayer = g.currentPlayer
	res.Scores = g.scoreboardLocked()
	return res, nil
}

func (g *Game) findCard(id int) *Card {
	for i := range g.cards {
		if g.cards[i].ID == id {
			return &g.cards[i]
		}
	}
	return nil
}

func countOf(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}
