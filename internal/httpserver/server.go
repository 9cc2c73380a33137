// internal/httpserver/server.go
//
// HTTP server wiring for the memory game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints under /api/game (see routes_game.go).
//   - Error-kind → HTTP status mapping.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Seat tokens are verified per request (tokens.go); there is no session
//     state in the HTTP layer itself.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mkerrigan/pairup/internal/game"
	"github.com/mkerrigan/pairup/internal/opponent"
	"github.com/mkerrigan/pairup/internal/store"
)

// Server bundles the router with the game registry and collaborators.
type Server struct {
	r       *chi.Mux
	store   store.Store
	sprites game.SpriteSource
	judge   game.Commentator
	chooser *opponent.Chooser
	secret  []byte
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, sprites game.SpriteSource, judge game.Commentator) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		sprites: sprites,
		judge:   judge,
		chooser: opponent.NewChooser(),
		secret:  []byte(getEnv("TOKEN_SECRET", "dev_secret_change_me")),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"pairup","endpoints":["/health","POST /api/game/new","POST /api/game/{id}/flip"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountGame()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ responses ----------------------------------

// errRes is the uniform failure body.
type errRes struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeErr maps a game error kind to an HTTP status and writes the body.
func writeErr(w http.ResponseWriter, err error) {
	kind := game.KindOf(err)
	status := http.StatusBadRequest
	switch kind {
	case game.KindGameNotFound:
		status = http.StatusNotFound
	case game.KindInvalidToken, game.KindTokenRequired:
		status = http.StatusUnauthorized
	case game.KindNotYourTurn:
		status = http.StatusConflict
	case "":
		kind = "bad_request"
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errRes{Error: string(kind), Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
