package sprites

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreatureResolvesOfficialArtwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/25" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"name": "pikachu",
			"sprites": {
				"front_default": "https://img.test/sprite/25.png",
				"other": {"official-artwork": {"front_default": "https://img.test/art/25.png"}}
			}
		}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	name, image := c.Creature(context.Background(), 25)
	if name != "Pikachu" {
		t.Fatalf("name %q, want capitalized Pikachu", name)
	}
	if image != "https://img.test/art/25.png" {
		t.Fatalf("image %q, want official artwork", image)
	}
}

func TestCreatureSpriteFallbackChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "ditto", "sprites": {"front_default": "https://img.test/sprite/132.png"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, image := c.Creature(context.Background(), 132)
	if image != "https://img.test/sprite/132.png" {
		t.Fatalf("image %q, want front_default fallback", image)
	}
}

func TestCreatureOfflineFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	name, image := c.Creature(context.Background(), 7)
	if name != "Pokemon 7" {
		t.Fatalf("name %q, want generic fallback", name)
	}
	if image != rawSpriteURL(7) {
		t.Fatalf("image %q, want static sprite URL", image)
	}
}

func TestCreatureCachesByID(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"name": "mew", "sprites": {"front_default": "https://img.test/151.png"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	for i := 0; i < 5; i++ {
		if name, _ := c.Creature(context.Background(), 151); name != "Mew" {
			t.Fatalf("call %d: name %q", i, name)
		}
	}
	if hits != 1 {
		t.Fatalf("upstream hit %d times, want 1 (cached)", hits)
	}
}
