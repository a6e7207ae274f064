package leaderboard

import (
	"math"
	"time"
)

// Status classifies a player by the age of its last update relative to now.
func Status(updatedAt, now time.Time) ActivityStatus {
	age := now.Sub(updatedAt)
	switch {
	case age < onlineWindow:
		return StatusOnline
	case age < recentWindow:
		return StatusRecent
	default:
		return StatusOffline
	}
}

// Percentile is the share of the population ranked below rank, in percent,
// rounded half to even at one decimal. An empty population yields 0.
func Percentile(rank, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(total-rank) / float64(total) * 100
	return math.RoundToEven(p*10) / 10
}
