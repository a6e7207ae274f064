package player

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lib/pq"
	"github.com/mauv0809/tap-to-win/internal/apperr"
	"github.com/mauv0809/tap-to-win/internal/database"
)

const selectPlayer = `
	SELECT player_id, total_money, total_clicks, best_streak, owned_power_ups, achievements, created_at, updated_at
	FROM players
	WHERE player_id = $1`

// New creates a new PlayerStore.
func New(db *sql.DB, opts ...Option) PlayerStore {
	s := &store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate looks the player up and inserts a zero-valued row when it is
// missing. It runs outside a transaction: a concurrent creator makes the
// insert fail with a unique violation, after which the row is re-read.
func (s *store) GetOrCreate(ctx context.Context, playerID string) (*Player, error) {
	const op = "player.get_or_create"
	c, err := database.Acquire(ctx, s.db, op)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	p, err := scanPlayer(c.QueryRowContext(ctx, selectPlayer, playerID))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, database.Classify(op, err)
	}
	if s.afterMiss != nil {
		s.afterMiss(ctx, playerID)
	}

	now := s.now()
	p, err = scanPlayer(c.QueryRowContext(ctx, `
		INSERT INTO players (player_id, total_money, total_clicks, best_streak, owned_power_ups, achievements, created_at, updated_at)
		VALUES ($1, 0, 0, 0, '{}', '{}', $2, $2)
		RETURNING player_id, total_money, total_clicks, best_streak, owned_power_ups, achievements, created_at, updated_at`,
		playerID, now))
	if err == nil {
		log.Info("Created new player", "player_id", playerID)
		return p, nil
	}
	if !database.IsUniqueViolation(err) {
		return nil, database.Classify(op, err)
	}

	log.Debug("Player created concurrently, re-reading", "player_id", playerID)
	p, err = scanPlayer(c.QueryRowContext(ctx, selectPlayer, playerID))
	if err != nil {
		return nil, database.Classify(op, err)
	}
	return p, nil
}

// Save upserts the full progress of a player.
func (s *store) Save(ctx context.Context, playerID string, progress Progress) error {
	const op = "player.save"
	progress = progress.Normalize()
	c, err := database.Acquire(ctx, s.db, op)
	if err != nil {
		return err
	}
	defer c.Close()

	now := s.now()
	err = database.WithTx(ctx, c, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO players (player_id, total_money, total_clicks, best_streak, owned_power_ups, achievements, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT (player_id) DO UPDATE SET
				total_money = excluded.total_money,
				total_clicks = excluded.total_clicks,
				best_streak = excluded.best_streak,
				owned_power_ups = excluded.owned_power_ups,
				achievements = excluded.achievements,
				updated_at = excluded.updated_at`,
			playerID, progress.TotalMoney, progress.TotalClicks, progress.BestStreak,
			pq.StringArray(progress.OwnedPowerUps), pq.StringArray(progress.Achievements), now)
		return err
	})
	if err != nil {
		return database.Classify(op, err)
	}
	log.Debug("Saved player", "player_id", playerID, "total_money", progress.TotalMoney)
	return nil
}

// Reset zeroes every mutable field, keeping the row and its created_at.
func (s *store) Reset(ctx context.Context, playerID string) error {
	const op = "player.reset"
	c, err := database.Acquire(ctx, s.db, op)
	if err != nil {
		return err
	}
	defer c.Close()

	var affected int64
	err = database.WithTx(ctx, c, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE players
			SET total_money = 0, total_clicks = 0, best_streak = 0,
				owned_power_ups = '{}', achievements = '{}', updated_at = $1
			WHERE player_id = $2`, s.now(), playerID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return database.Classify(op, err)
	}
	if affected == 0 {
		log.Debug("Reset matched no player", "player_id", playerID)
	}
	return nil
}

func (s *store) Ping(ctx context.Context) error {
	const op = "player.ping"
	c, err := database.Acquire(ctx, s.db, op)
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.PingContext(ctx); err != nil {
		return apperr.UnavailableError(op, err)
	}
	return nil
}

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var powerUps, achievements pq.StringArray
	var createdAt, updatedAt database.Time
	err := scanner.Scan(
		&p.ID, &p.TotalMoney, &p.TotalClicks, &p.BestStreak,
		&powerUps, &achievements, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	p.OwnedPowerUps = nonNil(powerUps)
	p.Achievements = nonNil(achievements)
	return &p, nil
}

func nonNil(tokens []string) []string {
	if tokens == nil {
		return []string{}
	}
	return tokens
}
