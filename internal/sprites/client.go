// internal/sprites/client.go
//
// PokeAPI client for the pokemon theme.
// Responsibilities:
//   - Resolve a Pokédex id to a display name and artwork URL, preferring the
//     official artwork, then the default sprite, then a static raw-GitHub
//     sprite URL that works offline.
//   - Cache responses per id for the life of the process; the identity pool
//     is small (Gen 1) and static.
//   - Never return an error: an unreachable provider degrades to a generic
//     "Pokemon <id>" name and the static sprite URL.

package sprites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const userAgent = "pairup/1.0 (+https://localhost)"

// rawSpriteURL is the offline fallback image for a Pokédex id.
func rawSpriteURL(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", id)
}

// creature is a cached resolution result.
type creature struct {
	Name  string
	Image string
}

// Client resolves Pokédex ids against a PokeAPI-compatible endpoint.
// Implements game.SpriteSource.
type Client struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[int]creature
}

// NewClient builds a Client for the given base URL (e.g.
// https://pokeapi.co/api/v2).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 3 * time.Second},
		cache:   make(map[int]creature),
	}
}

// Creature returns the display name and image URL for a Pokédex id.
func (c *Client) Creature(ctx context.Context, id int) (string, string) {
	c.mu.Lock()
	if hit, ok := c.cache[id]; ok {
		c.mu.Unlock()
		return hit.Name, hit.Image
	}
	c.mu.Unlock()

	got := c.fetch(ctx, id)

	c.mu.Lock()
	c.cache[id] = got
	c.mu.Unlock()
	return got.Name, got.Image
}

// pokemonRes is the slice of the PokeAPI response we care about.
type pokemonRes struct {
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

func (c *Client) fetch(ctx context.Context, id int) creature {
	fallback := creature{Name: fmt.Sprintf("Pokemon %d", id), Image: rawSpriteURL(id)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/pokemon/%d", c.baseURL, id), nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Int("id", id).Msg("sprite fetch failed")
		return fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Int("id", id).Msg("sprite fetch failed")
		return fallback
	}

	var out pokemonRes
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fallback
	}

	img := out.Sprites.Other.OfficialArtwork.FrontDefault
	if img == "" {
		img = out.Sprites.FrontDefault
	}
	if img == "" {
		img = rawSpriteURL(id)
	}
	name := capitalize(out.Name)
	if name == "" {
		name = fallback.Name
	}
	return creature{Name: name, Image: img}
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
