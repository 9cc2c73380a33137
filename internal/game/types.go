// internal/game/types.go
//
// Core type definitions for the memory game engine.
// Defines:
//   - Theme, Difficulty, Mode, Player: closed string enums used across the API.
//   - Card / CardView: a board card and its masked client-facing projection.
//   - MoveRecord, CommentaryEntry, SeatStats: per-game bookkeeping.

package game

// Theme selects the card art pool.
type Theme string

const (
	ThemePokemon Theme = "pokemon"
	ThemeEmoji   Theme = "emoji"
	ThemeFlags   Theme = "flags"
)

// Difficulty sets the pair count for the board, and doubles as the tuning
// knob for the scripted opponent.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Pairs returns the board size (in pairs) for a difficulty.
// Unknown values fall back to medium, matching the API's lenient parsing.
func (d Difficulty) Pairs() int {
	switch d {
	case DifficultyEasy:
		return 6
	case DifficultyHard:
		return 12
	default:
		return 8
	}
}

// Mode is how many humans are competing and against what.
type Mode string

const (
	ModeSolo    Mode = "solo"
	ModeVsAI    Mode = "vs_ai"
	ModeVsHuman Mode = "vs_human"
)

// Player identifies a seat. In vs_ai games Player2 is the scripted opponent.
type Player string

const (
	Player1 Player = "player1"
	Player2 Player = "player2"
)

// Other returns the opposing seat.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Card is a single board card. Exactly two cards in a deck share a PairKey.
// Image and Emoji are mutually exclusive by theme. A matched card stays
// face-up for the rest of the game.
type Card struct {
	ID      int    `json:"id"`
	PairKey int    `json:"pair_key"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

// CardView is the masked projection served to clients. Display fields are
// null unless the card is face-up or matched. This is the anti-cheat
// boundary: no other card serialization may reach a client in a
// competitive mode.
type CardView struct {
	ID      int     `json:"id"`
	Flipped bool    `json:"flipped"`
	Matched bool    `json:"matched"`
	Name    *string `json:"name"`
	Image   *string `json:"image"`
	Emoji   *string `json:"emoji"`
}

// MoveRecord is one entry in the append-only move history. The opponent's
// memory is reconstructed exclusively from these records, so the scripted
// opponent only ever "sees" cards that were revealed on the table.
type MoveRecord struct {
	CardID     int    `json:"card_id"`
	PairKey    int    `json:"pair_key"`
	Name       string `json:"name"`
	MoveNumber int    `json:"move_number"`
	Player     Player `json:"player"`
}

// CommentaryEntry is one generated (or canned) line of table talk.
type CommentaryEntry struct {
	Text   string `json:"text"`
	Type   string `json:"type"` // "match" | "miss"
	Player Player `json:"player"`
	Move   int    `json:"move"`
}

// SeatStats is the per-seat scoring record.
type SeatStats struct {
	Score    int
	Attempts int
	PairsWon int
	Streak   int
}

// Accuracy is PairsWon/Attempts as a percentage rounded to one decimal,
// exactly 0.0 with no attempts yet.
func (s SeatStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0.0
	}
	return round1(float64(s.PairsWon) / float64(s.Attempts) * 100)
}

// Snapshot is a consistent read-only copy of the board used by the
// opponent strategy and the memory HUD. Taken under the game lock.
type Snapshot struct {
	Cards          []Card
	History        []MoveRecord
	CurrentFlipped []int // card ids awaiting resolution, in flip order
}
