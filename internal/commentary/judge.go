// internal/commentary/judge.go
//
// Snarky table-talk generation through a local Ollama instance.
// Responsibilities:
//   - Build one-sentence prompts from flip/roast stat summaries, keeping the
//     tone tiers (grudging compliment, gentle mock, sarcasm, savage roast).
//   - POST /api/generate with stream=false and a short timeout.
//   - Fall back to a canned line on any failure: network error, timeout,
//     non-2xx, or an empty response body. The caller never sees an error.

package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mkerrigan/pairup/internal/game"
)

// fallbackLines is the fixed taunt set used whenever generation fails.
var fallbackLines = []string{
	"Are you even trying? 😂",
	"My grandmother could do better...",
	"This is painful to watch.",
	"Maybe memory games aren't your thing?",
}

// Judge generates commentary through Ollama. Zero value is not usable;
// construct with NewJudge.
type Judge struct {
	baseURL string
	model   string
	client  *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// NewJudge builds a Judge for the given Ollama base URL (e.g.
// http://localhost:11434) and model name.
func NewJudge(baseURL, model string) *Judge {
	return &Judge{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 3 * time.Second},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// MatchLine implements game.Commentator.
func (j *Judge) MatchLine(ctx context.Context, info game.MatchInfo) string {
	optimal := info.Pairs
	moves := info.Moves
	if moves < 1 {
		moves = 1
	}
	efficiency := float64(optimal) / float64(moves) * 100

	var prompt string
	switch {
	case info.Won && info.Moves <= optimal+3:
		prompt = fmt.Sprintf(
			"Player won %d-pair memory in %d moves (near optimal). Short grudging compliment (1 sentence).",
			info.Pairs, info.Moves)
	case info.Won:
		prompt = fmt.Sprintf(
			"Player won but took %d moves for %d pairs. Gentle mock (1 sentence).",
			info.Moves, info.Pairs)
	case efficiency > 80:
		prompt = "Player doing very well. Short competitive response (1 sentence)."
	default:
		prompt = "Player made match but struggling. Playful jab (1 sentence)."
	}
	return j.generate(ctx, prompt)
}

// MissLine implements game.Commentator.
func (j *Judge) MissLine(ctx context.Context, info game.MissInfo) string {
	var prompt string
	switch {
	case info.Repeats >= 3:
		prompt = fmt.Sprintf(
			"Player flipped same wrong pair %d times. Funny roast (1 sentence).", info.Repeats)
	case info.Moves >= info.Pairs*2:
		prompt = fmt.Sprintf(
			"Player at %d moves for %d pairs. Sarcastic comment (1 sentence).",
			info.Moves, info.Pairs)
	default:
		prompt = "Player missed. Short sassy comment (1 sentence)."
	}
	return j.generate(ctx, prompt)
}

// RoastLine implements game.Commentator.
func (j *Judge) RoastLine(ctx context.Context, info game.RoastInfo) string {
	optimal := info.Pairs
	ratio := 1.0
	if optimal > 0 {
		ratio = float64(info.Moves) / float64(optimal)
	}

	var prompt string
	switch {
	case ratio > 3:
		prompt = fmt.Sprintf(
			"Player took %d moves for %d/%d pairs (should be ~%d). Savage roast (1 sentence).",
			info.Moves, info.Matches, info.Pairs, optimal)
	case ratio > 2:
		prompt = fmt.Sprintf(
			"Player at %d moves, %d/%d matched. Struggling. Roast (1 sentence).",
			info.Moves, info.Matches, info.Pairs)
	default:
		prompt = fmt.Sprintf(
			"Player doing well - %d moves, %d/%d pairs. Competitive response (1 sentence).",
			info.Moves, info.Matches, info.Pairs)
	}
	return j.generate(ctx, prompt)
}

// generateReq/Res are the Ollama /api/generate payloads.
type generateReq struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}
type generateRes struct {
	Response string `json:"response"`
}

// generate runs one prompt and returns the model's line, or a canned
// fallback on any failure.
func (j *Judge) generate(ctx context.Context, prompt string) string {
	body, _ := json.Marshal(generateReq{Model: j.model, Prompt: prompt, Stream: false})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		j.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return j.fallback()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("commentary generation failed")
		return j.fallback()
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().Int("status", resp.StatusCode).Msg("commentary generation failed")
		return j.fallback()
	}

	var out generateRes
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return j.fallback()
	}
	line := strings.TrimSpace(out.Response)
	if line == "" {
		return j.fallback()
	}
	return line
}

func (j *Judge) fallback() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return fallbackLines[j.rng.Intn(len(fallbackLines))]
}
