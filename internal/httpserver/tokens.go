// internal/httpserver/tokens.go
//
// Seat tokens for competitive games. A token is an HS256 JWT binding one
// game id to one seat; the client treats it as an opaque bearer string.
// Verification is stateless: signature plus claim match. The AI seat of a
// vs_ai game never holds a token.

package httpserver

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkerrigan/pairup/internal/game"
)

// signSeatToken issues the bearer token for a seat in a game.
func (s *Server) signSeatToken(gameID string, seat game.Player) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid":  gameID,
		"seat": string(seat),
		"iat":  time.Now().Unix(),
	})
	return t.SignedString(s.secret)
}

// verifySeatToken checks that token is a valid seat token for the given
// game and seat. Returns a game.Error with KindTokenRequired or
// KindInvalidToken.
func (s *Server) verifySeatToken(token, gameID string, seat game.Player) error {
	if token == "" {
		return game.E(game.KindTokenRequired, "seat token required")
	}
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return game.E(game.KindInvalidToken, "invalid seat token")
	}
	gid, _ := claims["gid"].(string)
	st, _ := claims["seat"].(string)
	if gid != gameID || st != string(seat) {
		return game.E(game.KindInvalidToken, "token does not match this seat")
	}
	return nil
}

// authorizeFlip enforces the per-mode token rules for an acting seat:
// solo games are tokenless, the AI seat of a vs_ai game is tokenless, and
// every human seat in a competitive game must present its own token.
func (s *Server) authorizeFlip(g *game.Game, seat game.Player, token string) error {
	switch g.Mode() {
	case game.ModeSolo:
		return nil
	case game.ModeVsAI:
		if seat == game.Player2 {
			return nil // scripted opponent
		}
		return s.verifySeatToken(token, g.ID(), seat)
	default: // vs_human
		return s.verifySeatToken(token, g.ID(), seat)
	}
}

// authorizeRead accepts a token for either seat of a competitive game.
func (s *Server) authorizeRead(g *game.Game, token string) error {
	if g.Mode() == game.ModeSolo {
		return nil
	}
	if err := s.verifySeatToken(token, g.ID(), game.Player1); err == nil {
		return nil
	}
	return s.verifySeatToken(token, g.ID(), game.Player2)
}
