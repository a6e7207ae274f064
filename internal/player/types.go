package player

import (
	"context"
	"database/sql"
	"time"
)

// Player is the persisted progress of one player.
type Player struct {
	ID            string    `json:"player_id" msgpack:"player_id"`
	TotalMoney    int64     `json:"total_money" msgpack:"total_money"`
	TotalClicks   int64     `json:"total_clicks" msgpack:"total_clicks"`
	BestStreak    int64     `json:"best_streak" msgpack:"best_streak"`
	OwnedPowerUps []string  `json:"owned_power_ups" msgpack:"owned_power_ups"`
	Achievements  []string  `json:"achievements" msgpack:"achievements"`
	CreatedAt     time.Time `json:"-" msgpack:"created_at"`
	UpdatedAt     time.Time `json:"-" msgpack:"updated_at"`
}

// Progress holds every mutable field of a Player. A save always replaces
// all of them.
type Progress struct {
	TotalMoney    int64    `json:"total_money" msgpack:"total_money"`
	TotalClicks   int64    `json:"total_clicks" msgpack:"total_clicks"`
	BestStreak    int64    `json:"best_streak" msgpack:"best_streak"`
	OwnedPowerUps []string `json:"owned_power_ups" msgpack:"owned_power_ups"`
	Achievements  []string `json:"achievements" msgpack:"achievements"`
}

// Option configures a store.
type Option func(*store)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *store) {
		s.now = now
	}
}

// store handles all database operations for players.
type store struct {
	db  *sql.DB
	now func() time.Time

	// afterMiss runs between a missed lookup and the insert in GetOrCreate.
	afterMiss func(ctx context.Context, playerID string)
}
