// main.go
//
// Process entrypoint: load .env, set the log level, wire the sprite client,
// the commentary judge, and the game registry into the HTTP server, and
// serve. All knobs come from the environment (PORT, LOG_LEVEL, POKEAPI_URL,
// OLLAMA_URL, OLLAMA_MODEL, GAME_TTL_MINUTES, TOKEN_SECRET, CLIENT_ORIGIN).

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkerrigan/pairup/internal/commentary"
	"github.com/mkerrigan/pairup/internal/httpserver"
	"github.com/mkerrigan/pairup/internal/sprites"
	"github.com/mkerrigan/pairup/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	spriteClient := sprites.NewClient(getEnv("POKEAPI_URL", "https://pokeapi.co/api/v2"))
	judge := commentary.NewJudge(
		getEnv("OLLAMA_URL", "http://localhost:11434"),
		getEnv("OLLAMA_MODEL", "llama3.2"),
	)

	ttl := time.Duration(envInt("GAME_TTL_MINUTES", 0)) * time.Minute
	mem := store.NewMemoryStore(ttl)

	srv := httpserver.New(mem, spriteClient, judge)
	port := getEnv("PORT", "8080")
	log.Info().Str("port", port).Dur("gameTTL", ttl).Msg("starting pairup server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
