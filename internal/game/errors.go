// internal/game/errors.go
//
// Kind-tagged errors for the engine. The Kind doubles as the wire-level
// "error" field, so handlers can map a failure to an HTTP status without
// string matching.

package game

import "errors"

// Kind classifies an engine failure.
type Kind string

const (
	KindGameNotFound         Kind = "game_not_found"
	KindInvalidToken         Kind = "invalid_token"
	KindTokenRequired        Kind = "token_required"
	KindNotYourTurn          Kind = "not_your_turn"
	KindInvalidCard          Kind = "invalid_card"
	KindInvalidPlayerForMode Kind = "invalid_player_for_mode"
	KindNoValidMoves         Kind = "no_valid_moves"
	KindInsufficientPool     Kind = "insufficient_pool_size"
)

// Error is a failure with a wire-visible kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// E builds a kind-tagged error.
func E(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf extracts the Kind from err, or "" for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
