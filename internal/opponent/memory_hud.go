// internal/opponent/memory_hud.go
//
// Small read-only view of the opponent's memory for the client HUD.

package opponent

import (
	"sort"

	"github.com/mkerrigan/pairup/internal/game"
)

// hudLimit caps the HUD list at the strongest memories.
const hudLimit = 8

// MemoryEntry is one remembered pair as shown in the HUD.
type MemoryEntry struct {
	PairKey int    `json:"pair_key"`
	Name    string `json:"name"`
	Seen    int    `json:"seen"` // distinct positions observed for this pair
}

// MemorySummary lists the top remembered pairs under the profile's window,
// strongest first.
func MemorySummary(snap game.Snapshot, p Profile) []MemoryEntry {
	mem := Recall(snap.History, p.Window)

	names := make(map[int]string)
	for _, c := range snap.Cards {
		if _, ok := names[c.PairKey]; !ok {
			names[c.PairKey] = c.Name
		}
	}

	out := make([]MemoryEntry, 0, len(mem))
	for pk, ids := range mem {
		out = append(out, MemoryEntry{PairKey: pk, Name: names[pk], Seen: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Seen != out[j].Seen {
			return out[i].Seen > out[j].Seen
		}
		return out[i].PairKey < out[j].PairKey
	})
	if len(out) > hudLimit {
		out = out[:hudLimit]
	}
	return out
}
