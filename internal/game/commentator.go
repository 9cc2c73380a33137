// internal/game/commentator.go
//
// Contract between the engine and the external text-generation collaborator.
// The engine only ever hands over small stat summaries; prompt wording and
// transport live in internal/commentary. Implementations must always return
// a line (canned fallback on failure) — commentary can never abort a flip.

package game

import "context"

// MatchInfo summarizes the game at the moment of a match.
type MatchInfo struct {
	Pairs   int
	Moves   int
	Matches int
	Won     bool // this match completed the board
}

// MissInfo summarizes the game at the moment of a miss.
type MissInfo struct {
	Pairs       int
	Moves       int
	LastMistake string // "name1-name2" of the mismatched pair
	Repeats     int    // how many times this exact mistake has been made
}

// RoastInfo summarizes overall performance for the on-demand roast.
type RoastInfo struct {
	Pairs   int
	Moves   int
	Matches int
	Player  Player
}

// Commentator produces one-line table talk. Implementations swallow all
// transport failures.
type Commentator interface {
	MatchLine(ctx context.Context, info MatchInfo) string
	MissLine(ctx context.Context, info MissInfo) string
	RoastLine(ctx context.Context, info RoastInfo) string
}
