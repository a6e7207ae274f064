package player

import (
	"fmt"

	"github.com/mauv0809/tap-to-win/internal/apperr"
)

// Validate rejects negative counters and empty upgrade/achievement tokens.
func (p Progress) Validate() error {
	const op = "player.validate"
	counters := []struct {
		name  string
		value int64
	}{
		{"total_money", p.TotalMoney},
		{"total_clicks", p.TotalClicks},
		{"best_streak", p.BestStreak},
	}
	for _, c := range counters {
		if c.value < 0 {
			return apperr.InvalidError(op, fmt.Sprintf("%s must be non-negative, got %d", c.name, c.value))
		}
	}
	for i, token := range p.OwnedPowerUps {
		if token == "" {
			return apperr.InvalidError(op, fmt.Sprintf("owned_power_ups[%d] must not be empty", i))
		}
	}
	for i, token := range p.Achievements {
		if token == "" {
			return apperr.InvalidError(op, fmt.Sprintf("achievements[%d] must not be empty", i))
		}
	}
	return nil
}

// Normalize returns a copy with nil sets replaced by empty ones and
// duplicate tokens dropped, keeping the first occurrence.
func (p Progress) Normalize() Progress {
	p.OwnedPowerUps = dedupe(p.OwnedPowerUps)
	p.Achievements = dedupe(p.Achievements)
	return p
}

func dedupe(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
