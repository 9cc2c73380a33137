// internal/daily/daily.go
//
// Daily challenge seeding. Every player starting the daily on the same UTC
// date with the same difficulty and theme gets a bit-identical board.

package daily

import (
	"fmt"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives the deterministic daily seed string: ISO date, difficulty,
// theme, dash-joined.
func Seed(t time.Time, difficulty, theme string) string {
	return fmt.Sprintf("%s-%s-%s", DateKey(t), difficulty, theme)
}
