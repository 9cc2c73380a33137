// internal/game/themes.go
//
// Built-in card pools for the emoji and flags themes. The pokemon theme has
// no local pool; its identities are resolved through the sprite provider.

package game

// emojiPool is the curated glyph set for the emoji theme.
var emojiPool = []string{
	"🐶", "🐱", "🦊", "🐻", "🐼", "🐨", "🐯", "🦁", "🐮", "🐷", "🐸", "🐵",
	"🦄", "🐔", "🐧", "🐦", "🐤", "🐙", "🦋", "🐞", "🦖", "🦕", "🐢", "🐍",
	"🍎", "🍌", "🍓", "🍒", "🍉", "🍍", "🥝", "🥑", "🌶️", "🥕", "🥐", "🍕",
	"⚽", "🏀", "🏈", "🎾", "🎲", "🎹", "🎸", "🎧", "🎯", "🚗", "🚲", "🚀",
	"🌞", "🌙", "⭐", "☁️", "🌈", "❄️", "🔥", "💧", "🌊", "🌳", "🌵", "🌸",
}

// flagPool is the curated glyph set for the flags theme.
var flagPool = []string{
	"🇺🇸", "🇬🇧", "🇫🇷", "🇩🇪", "🇯🇵", "🇨🇦", "🇮🇹", "🇪🇸", "🇨🇳", "🇧🇷",
	"🇷🇺", "🇷🇴", "🇸🇪", "🇳🇴", "🇫🇮", "🇦🇺", "🇳🇿", "🇲🇽", "🇮🇳", "🇰🇷",
	"🇹🇷", "🇵🇱", "🇭🇺", "🇵🇹", "🇬🇷", "🇳🇱", "🇧🇪", "🇨🇭", "🇩🇰", "🇿🇦",
}

// Pair keys are namespaced per theme so they never collide with Pokédex ids:
// emoji pairs start at 10000, flag pairs at 20000.
const (
	emojiPairBase = 10000
	flagPairBase  = 20000
)

// pokedexPoolSize is the Gen-1 identity pool (ids 1..150) used by the
// pokemon theme.
const pokedexPoolSize = 150
