package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/tap-to-win/internal/player"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	powerUps     = []string{"double_tap", "auto_clicker", "golden_finger", "lucky_charm", "time_warp"}
	achievements = []string{"first_click", "hundred_clicks", "first_thousand", "streak_10", "streak_50", "millionaire"}
)

type seedPlayer struct {
	ID       string          `msgpack:"player_id"`
	Progress player.Progress `msgpack:"progress"`
}

// generate builds n players with plausible progress. Money grows with clicks
// so the leaderboard ordering looks like real play.
func generate(n int, seed int64) []seedPlayer {
	rng := rand.New(rand.NewSource(seed))
	out := make([]seedPlayer, 0, n)
	for i := 0; i < n; i++ {
		clicks := rng.Int63n(50_000)
		out = append(out, seedPlayer{
			ID: uuid.NewString(),
			Progress: player.Progress{
				TotalMoney:    clicks * (1 + rng.Int63n(20)),
				TotalClicks:   clicks,
				BestStreak:    rng.Int63n(min(clicks, 500) + 1),
				OwnedPowerUps: pick(rng, powerUps),
				Achievements:  pick(rng, achievements),
			},
		})
	}
	return out
}

func pick(rng *rand.Rand, from []string) []string {
	out := []string{}
	for _, token := range from {
		if rng.Intn(2) == 0 {
			out = append(out, token)
		}
	}
	return out
}

func writeSnapshot(path string, seeds []seedPlayer) error {
	data, err := msgpack.Marshal(seeds)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func readSnapshot(path string) ([]seedPlayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var seeds []seedPlayer
	if err := msgpack.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	for _, s := range seeds {
		if err := s.Progress.Validate(); err != nil {
			return nil, fmt.Errorf("snapshot player %s: %w", s.ID, err)
		}
	}
	return seeds, nil
}

func seed(ctx context.Context, store player.PlayerStore, seeds []seedPlayer) error {
	for i, s := range seeds {
		if err := store.Save(ctx, s.ID, s.Progress); err != nil {
			return fmt.Errorf("failed to save player %s: %w", s.ID, err)
		}
		if (i+1)%100 == 0 {
			log.Info("Inserted batch", "completed", i+1, "total", len(seeds))
		}
	}
	return nil
}
