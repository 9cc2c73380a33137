// internal/httpserver/routes_game.go
//
// Game endpoints under /api/game. Every handler follows the same shape:
// decode a typed request, load the game from the registry, authorize the
// seat where the mode demands it, call into the engine, and encode a typed
// response. All rule enforcement lives in internal/game; this layer only
// translates between HTTP and engine results.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mkerrigan/pairup/internal/daily"
	"github.com/mkerrigan/pairup/internal/game"
	"github.com/mkerrigan/pairup/internal/opponent"
)

// mountGame registers all /api/game routes.
func (s *Server) mountGame() {
	s.r.Route("/api/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/join", s.handleJoin)
			r.Get("/state", s.handleState)
			r.Post("/flip", s.handleFlip)
			r.Post("/reset", s.handleReset)
			r.Post("/time-bonus", s.handleTimeBonus)
			r.Get("/roast", s.handleRoast)
			r.Get("/opponent-move", s.handleOpponentMove)
			r.Get("/history", s.handleHistory)
			r.Get("/opponent-memory", s.handleOpponentMemory)
		})
	})
}

// loadGame pulls the path id's game from the registry.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return nil, false
	}
	return g, true
}

// parsePlayer maps the wire seat name to a Player.
func parsePlayer(s string) (game.Player, error) {
	switch s {
	case "", "player1":
		return game.Player1, nil
	case "player2":
		return game.Player2, nil
	}
	return "", errors.New("player must be player1 or player2")
}

func parseDifficulty(s string) game.Difficulty {
	switch game.Difficulty(s) {
	case game.DifficultyEasy, game.DifficultyMedium, game.DifficultyHard:
		return game.Difficulty(s)
	}
	return game.DifficultyMedium
}

func parseTheme(s string) game.Theme {
	switch game.Theme(s) {
	case game.ThemeEmoji, game.ThemeFlags, game.ThemePokemon:
		return game.Theme(s)
	}
	return game.ThemePokemon
}

// -----------------------------------------------------------------------------
// POST /api/game/new

type newGameReq struct {
	Difficulty   string `json:"difficulty"`
	Theme        string `json:"theme"`
	Multiplayer  bool   `json:"multiplayer"`
	AIMode       bool   `json:"ai_mode"`
	AIDifficulty string `json:"ai_difficulty"`
	Daily        bool   `json:"daily"`
	Seed         string `json:"seed"`
	TimeAttack   bool   `json:"time_attack"`
	TimeSeconds  int    `json:"time_seconds"`
}

type newGameRes struct {
	GameID        string            `json:"game_id"`
	Cards         []game.CardView   `json:"cards"`
	PreviewCards  []game.Card       `json:"preview_cards,omitempty"` // solo only
	Pairs         int               `json:"pairs"`
	Theme         game.Theme        `json:"theme"`
	Mode          game.Mode         `json:"mode"`
	Difficulty    game.Difficulty   `json:"difficulty"`
	AIDifficulty  game.Difficulty   `json:"ai_difficulty,omitempty"`
	PlayerToken   *string           `json:"player_token"` // null for solo
	Seed          string            `json:"seed,omitempty"`
	Daily         bool              `json:"daily"`
	TimeAttack    bool              `json:"time_attack"`
	TimeSeconds   int               `json:"time_seconds"`
	CurrentPlayer game.Player       `json:"current_player"`
	Player2Joined bool              `json:"player2_joined"`
	Scores        game.Scoreboard   `json:"scores"`
}

// handleNewGame creates and registers a game. Multiplayer overrides ai_mode
// and forces time_attack off; a daily game without an explicit seed derives
// one from today's date, the difficulty, and the theme.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	difficulty := parseDifficulty(req.Difficulty)
	theme := parseTheme(req.Theme)

	mode := game.ModeSolo
	switch {
	case req.Multiplayer:
		mode = game.ModeVsHuman
		req.TimeAttack = false
	case req.AIMode:
		mode = game.ModeVsAI
	}

	seed := req.Seed
	if req.Daily && seed == "" {
		seed = daily.Seed(time.Now(), string(difficulty), string(theme))
	}

	cfg := game.Config{
		ID:           uuid.NewString(),
		Difficulty:   difficulty,
		Theme:        theme,
		Seed:         seed,
		Mode:         mode,
		AIDifficulty: parseDifficulty(req.AIDifficulty),
		TimeAttack:   req.TimeAttack,
		TimeSeconds:  req.TimeSeconds,
	}
	g, err := game.New(r.Context(), cfg, s.sprites, s.judge)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	res := newGameRes{
		GameID:        g.ID(),
		Cards:         g.PublicView(),
		Pairs:         g.Pairs(),
		Theme:         g.Theme(),
		Mode:          g.Mode(),
		Difficulty:    difficulty,
		Seed:          g.Seed(),
		Daily:         req.Daily,
		CurrentPlayer: g.CurrentPlayer(),
		Player2Joined: g.Player2Joined(),
		Scores:        g.Scoreboard(),
	}
	res.TimeAttack, res.TimeSeconds = g.TimeAttack()
	if mode == game.ModeVsAI {
		res.AIDifficulty = g.AIDifficulty()
	}
	if mode == game.ModeSolo {
		// The full preview never leaves the server in competitive modes;
		// the masked view is the anti-cheat boundary.
		res.PreviewCards = g.FullView()
	} else {
		tok, err := s.signSeatToken(g.ID(), game.Player1)
		if err != nil {
			http.Error(w, `{"error":"token_sign_failed"}`, http.StatusInternalServerError)
			return
		}
		res.PlayerToken = &tok
	}

	log.Info().
		Str("gameId", g.ID()).
		Str("mode", string(mode)).
		Str("theme", string(theme)).
		Str("difficulty", string(difficulty)).
		Bool("daily", req.Daily).
		Msg("game created")
	writeJSON(w, res)
}

// -----------------------------------------------------------------------------
// POST /api/game/{id}/join

type joinRes struct {
	GameID        string          `json:"game_id"`
	PlayerToken   string          `json:"player_token"`
	Player        game.Player     `json:"player"`
	Cards         []game.CardView `json:"cards"`
	Pairs         int             `json:"pairs"`
	CurrentPlayer game.Player     `json:"current_player"`
}

// handleJoin claims the second seat of a vs_human game and issues its token.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	if err := g.JoinPlayer2(); err != nil {
		writeErr(w, err)
		return
	}
	tok, err := s.signSeatToken(g.ID(), game.Player2)
	if err != nil {
		http.Error(w, `{"error":"token_sign_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", g.ID()).Msg("player2 joined")
	writeJSON(w, joinRes{
		GameID:        g.ID(),
		PlayerToken:   tok,
		Player:        game.Player2,
		Cards:         g.PublicView(),
		Pairs:         g.Pairs(),
		CurrentPlayer: g.CurrentPlayer(),
	})
}

// -----------------------------------------------------------------------------
// GET /api/game/{id}/state

type stateRes struct {
	GameID        string                 `json:"game_id"`
	Cards         []game.CardView        `json:"cards"`
	Mode          game.Mode              `json:"mode"`
	Pairs         int                    `json:"pairs"`
	Moves         int                    `json:"moves"`
	Matches       int                    `json:"matches"`
	Completed     bool                   `json:"completed"`
	CurrentPlayer game.Player            `json:"current_player"`
	Player2Joined bool                   `json:"player2_joined"`
	Scores        game.Scoreboard        `json:"scores"`
	Commentary    []game.CommentaryEntry `json:"commentary_history"`
}

// handleState returns the masked view of a game. Non-solo games require a
// token for either seat.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	if err := s.authorizeRead(g, bearerToken(r)); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, stateRes{
		GameID:        g.ID(),
		Cards:         g.PublicView(),
		Mode:          g.Mode(),
		Pairs:         g.Pairs(),
		Moves:         g.Moves(),
		Matches:       g.Matches(),
		Completed:     g.Completed(),
		CurrentPlayer: g.CurrentPlayer(),
		Player2Joined: g.Player2Joined(),
		Scores:        g.Scoreboard(),
		Commentary:    g.CommentaryTrail(5),
	})
}

// -----------------------------------------------------------------------------
// POST /api/game/{id}/flip

type flipReq struct {
	CardID      int    `json:"card_id"`
	Player      string `json:"player"`
	PlayerToken string `json:"player_token"`
}

type flipRes struct {
	*game.FlipResult
	CardsState        []game.CardView        `json:"cards_state"`
	CommentaryHistory []game.CommentaryEntry `json:"commentary_history"`
}

// handleFlip authorizes the acting seat and runs the flip engine.
func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var req flipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	seat, err := parsePlayer(req.Player)
	if err != nil {
		http.Error(w, `{"error":"bad_player"}`, http.StatusBadRequest)
		return
	}
	token := req.PlayerToken
	if token == "" {
		token = bearerToken(r)
	}
	if err := s.authorizeFlip(g, seat, token); err != nil {
		writeErr(w, err)
		return
	}

	result, err := g.Flip(r.Context(), req.CardID, seat)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, flipRes{
		FlipResult:        result,
		CardsState:        g.PublicView(),
		CommentaryHistory: g.CommentaryTrail(5),
	})
}

// -----------------------------------------------------------------------------
// POST /api/game/{id}/reset

type resetRes struct {
	Cards []game.CardView `json:"cards"`
}

// handleReset turns all unmatched cards face-down after the client's
// mismatch display pause.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, resetRes{Cards: g.ResetUnmatched()})
}

// -----------------------------------------------------------------------------
// POST /api/game/{id}/time-bonus

type timeBonusReq struct {
	SecondsLeft int `json:"seconds_left"`
}
type timeBonusRes struct {
	Bonus        int `json:"bonus"`
	Player1Score int `json:"player1_score"`
}

// handleTimeBonus awards floor(seconds_left/10) points to player1.
func (s *Server) handleTimeBonus(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var req timeBonusReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	bonus, score := g.TimeBonus(req.SecondsLeft)
	writeJSON(w, timeBonusRes{Bonus: bonus, Player1Score: score})
}

// -----------------------------------------------------------------------------
// GET /api/game/{id}/roast

type roastRes struct {
	Roast string `json:"roast"`
}

// handleRoast produces an on-demand performance line for ?player= (default
// player1).
func (s *Server) handleRoast(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	seat, err := parsePlayer(r.URL.Query().Get("player"))
	if err != nil {
		http.Error(w, `{"error":"bad_player"}`, http.StatusBadRequest)
		return
	}
	writeJSON(w, roastRes{Roast: g.Roast(r.Context(), seat)})
}

// -----------------------------------------------------------------------------
// GET /api/game/{id}/opponent-move

type opponentMoveRes struct {
	CardID int `json:"card_id"`
}

// handleOpponentMove asks the strategy for the AI's next card. The caller
// feeds the choice back through the flip endpoint as player2.
func (s *Server) handleOpponentMove(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	if g.Mode() != game.ModeVsAI {
		writeErr(w, game.E(game.KindInvalidPlayerForMode, "game has no AI opponent"))
		return
	}
	cardID, err := s.chooser.Choose(g.Snapshot(), g.AIDifficulty())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, opponentMoveRes{CardID: cardID})
}

// -----------------------------------------------------------------------------
// GET /api/game/{id}/history

type historyRes struct {
	MoveHistory       []game.MoveRecord      `json:"move_history"`
	CommentaryHistory []game.CommentaryEntry `json:"commentary_history"`
}

// handleHistory returns the last 20 moves and the full commentary log.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, historyRes{
		MoveHistory:       g.History(20),
		CommentaryHistory: g.CommentaryTrail(0),
	})
}

// -----------------------------------------------------------------------------
// GET /api/game/{id}/opponent-memory

type opponentMemoryRes struct {
	Memory []opponent.MemoryEntry `json:"memory"`
}

// handleOpponentMemory exposes a tiny view of the AI's memory for the HUD.
func (s *Server) handleOpponentMemory(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	if g.Mode() != game.ModeVsAI {
		writeErr(w, game.E(game.KindInvalidPlayerForMode, "game has no AI opponent"))
		return
	}
	summary := opponent.MemorySummary(g.Snapshot(), opponent.ProfileFor(g.AIDifficulty()))
	writeJSON(w, opponentMemoryRes{Memory: summary})
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	a := r.Header.Get("Authorization")
	if len(a) > len(prefix) && a[:len(prefix)] == prefix {
		return a[len(prefix):]
	}
	return ""
}
