// internal/game/game.go
//
// Game State: the authoritative per-session record. Owns all mutation.
// Responsibilities:
//   - Construct a game from a Config (deck build, seeded rng, seat setup).
//   - Serialize every mutation behind a per-game mutex so two concurrent
//     flips can never corrupt the pending-flip pair or double-count a match.
//   - Masked (PublicView) and unmasked (FullView) card projections.
//   - Derived scoreboard with per-seat accuracy.
//
// The flip transition function itself lives in flip.go.

package game

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// commentaryFrequency gates how often generated table talk is requested:
// every Nth cumulative match for match lines, every Nth cumulative move for
// miss lines.
const commentaryFrequency = 3

// Config carries everything needed to start a game.
type Config struct {
	ID           string
	Difficulty   Difficulty
	Theme        Theme
	Seed         string // optional; non-empty means a reproducible deck
	Mode         Mode
	AIDifficulty Difficulty
	TimeAttack   bool
	TimeSeconds  int
}

// Game holds the full state of one session. All exported methods are safe
// for concurrent use; none blocks on I/O except a flip that triggers
// commentary, which is bounded by the commentator's own timeout.
type Game struct {
	mu sync.Mutex

	id           string
	difficulty   Difficulty
	theme        Theme
	seed         string
	mode         Mode
	pairs        int
	aiDifficulty Difficulty
	timeAttack   bool
	timeSeconds  int

	cards          []Card
	currentFlipped []int // card ids, length 0..2
	currentPlayer  Player
	player2Joined  bool

	moves   int
	matches int
	seat1   SeatStats
	seat2   SeatStats
	best    int

	history    []MoveRecord
	mistakes   []string
	commentary []CommentaryEntry

	rng   *rand.Rand
	judge Commentator
}

// New builds a game: deck from theme/difficulty, rng from the seed (or the
// clock when unseeded), both seats idle, player1 to act.
func New(ctx context.Context, cfg Config, sprites SpriteSource, judge Commentator) (*Game, error) {
	var rng *rand.Rand
	if cfg.Seed != "" {
		rng = rand.New(SeedSource(cfg.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pairs := cfg.Difficulty.Pairs()
	cards, err := BuildDeck(ctx, cfg.Theme, pairs, rng, sprites)
	if err != nil {
		return nil, err
	}

	timeSeconds := 0
	if cfg.TimeAttack {
		timeSeconds = cfg.TimeSeconds
	}

	g := &Game{
		id:            cfg.ID,
		difficulty:    cfg.Difficulty,
		theme:         cfg.Theme,
		seed:          cfg.Seed,
		mode:          cfg.Mode,
		pairs:         pairs,
		aiDifficulty:  cfg.AIDifficulty,
		timeAttack:    cfg.TimeAttack,
		timeSeconds:   timeSeconds,
		cards:         cards,
		currentPlayer: Player1,
		player2Joined: cfg.Mode != ModeVsHuman, // second seat pre-filled for solo/vs_ai
		rng:           rng,
		judge:         judge,
	}
	return g, nil
}

// --------------------------- plain accessors --------------------------------

func (g *Game) ID() string { return g.id }

func (g *Game) Mode() Mode { return g.mode }

func (g *Game) Theme() Theme { return g.theme }

func (g *Game) Seed() string { return g.seed }

func (g *Game) Pairs() int { return g.pairs }

func (g *Game) AIDifficulty() Difficulty { return g.aiDifficulty }

func (g *Game) TimeAttack() (bool, int) { return g.timeAttack, g.timeSeconds }

func (g *Game) CurrentPlayer() Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentPlayer
}

// Moves is the count of fully-resolved pairs attempted so far.
func (g *Game) Moves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves
}

// Matches is the count of pairs matched so far.
func (g *Game) Matches() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.matches
}

// Completed reports whether every pair has been matched.
func (g *Game) Completed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.matches == g.pairs
}

// Player2Joined reports whether the second seat is occupied.
func (g *Game) Player2Joined() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.player2Joined
}

// JoinPlayer2 claims the second seat of a vs_human game.
func (g *Game) JoinPlayer2() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode != ModeVsHuman {
		return E(KindInvalidPlayerForMode, "game is not a two-player game")
	}
	if g.player2Joined {
		return E(KindInvalidPlayerForMode, "second seat already taken")
	}
	g.player2Joined = true
	return nil
}

// ------------------------------- views --------------------------------------

// PublicView returns the masked card list: display fields only for cards
// that are face-up or matched.
func (g *Game) PublicView() []CardView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return maskCards(g.cards)
}

// FullView returns a copy of every card, unmasked. Local preview only; it
// is never served in a competitive mode.
func (g *Game) FullView() []Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Card, len(g.cards))
	copy(out, g.cards)
	return out
}

// Snapshot copies the board state the opponent strategy is allowed to see.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap := Snapshot{
		Cards:          make([]Card, len(g.cards)),
		History:        make([]MoveRecord, len(g.history)),
		CurrentFlipped: make([]int, len(g.currentFlipped)),
	}
	copy(snap.Cards, g.cards)
	copy(snap.History, g.history)
	copy(snap.CurrentFlipped, g.currentFlipped)
	return snap
}

// Scoreboard is both seats' scores and accuracy plus the game-wide best
// streak. Included in every flip payload and the state endpoint.
type Scoreboard struct {
	Player1Score    int     `json:"player1_score"`
	Player2Score    int     `json:"player2_score"`
	Player1Accuracy float64 `json:"player1_accuracy"`
	Player2Accuracy float64 `json:"player2_accuracy"`
	BestStreak      int     `json:"best_streak"`
}

func (g *Game) Scoreboard() Scoreboard {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scoreboardLocked()
}

func (g *Game) scoreboardLocked() Scoreboard {
	return Scoreboard{
		Player1Score:    g.seat1.Score,
		Player2Score:    g.seat2.Score,
		Player1Accuracy: g.seat1.Accuracy(),
		Player2Accuracy: g.seat2.Accuracy(),
		BestStreak:      g.best,
	}
}

// History returns up to n most recent move records (all when n <= 0).
func (g *Game) History(n int) []MoveRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	start := 0
	if n > 0 && len(g.history) > n {
		start = len(g.history) - n
	}
	out := make([]MoveRecord, len(g.history)-start)
	copy(out, g.history[start:])
	return out
}

// CommentaryTrail returns up to n most recent commentary entries (all when
// n <= 0).
func (g *Game) CommentaryTrail(n int) []CommentaryEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	start := 0
	if n > 0 && len(g.commentary) > n {
		start = len(g.commentary) - n
	}
	out := make([]CommentaryEntry, len(g.commentary)-start)
	copy(out, g.commentary[start:])
	return out
}

// ----------------------------- mutations ------------------------------------

// ResetUnmatched turns every non-matched card face-down and clears any
// pending flip pair. Called by the client after its mismatch display pause.
func (g *Game) ResetUnmatched() []CardView {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.cards {
		if !g.cards[i].Matched {
			g.cards[i].Flipped = false
		}
	}
	g.currentFlipped = g.currentFlipped[:0]
	return maskCards(g.cards)
}

// TimeBonus awards one point per full 10 seconds remaining, to player1
// only. Returns the bonus and player1's new score.
func (g *Game) TimeBonus(secondsLeft int) (bonus, score int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if secondsLeft < 0 {
		secondsLeft = 0
	}
	bonus = secondsLeft / 10
	g.seat1.Score += bonus
	return bonus, g.seat1.Score
}

// Roast produces an on-demand performance line for the given seat.
func (g *Game) Roast(ctx context.Context, player Player) string {
	g.mu.Lock()
	info := RoastInfo{Pairs: g.pairs, Moves: g.moves, Matches: g.matches, Player: player}
	g.mu.Unlock()
	return g.judge.RoastLine(ctx, info)
}

// ------------------------------ helpers -------------------------------------

func (g *Game) seat(p Player) *SeatStats {
	if p == Player2 {
		return &g.seat2
	}
	return &g.seat1
}

func maskCards(cards []Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = maskCard(c)
	}
	return out
}

func maskCard(c Card) CardView {
	v := CardView{ID: c.ID, Flipped: c.Flipped, Matched: c.Matched}
	if c.Flipped || c.Matched {
		v.Name = strPtr(c.Name)
		v.Image = strPtr(c.Image)
		v.Emoji = strPtr(c.Emoji)
	}
	return v
}

// strPtr returns nil for "", keeping hidden/absent fields as JSON null the
// way clients expect.
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
