package leaderboard

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

// rankedPopulation is the filter shared by every aggregate.
const rankedPopulation = `total_money > 0`

const rankingOrder = `total_money DESC, total_clicks DESC, player_id ASC`

// New creates a new LeaderboardService.
func New(db *sql.DB, opts ...Option) LeaderboardService {
	s := &service{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Leaderboard returns the top limit players and the size of the ranked
// population, read in one transaction so both agree.
func (s *service) Leaderboard(ctx context.Context, limit int) (*Board, error) {
	const op = "leaderboard.list"
	c, err := database.Acquire(ctx, s.db, op)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	now := s.now()
	board := &Board{Entries: []Entry{}, GeneratedAt: now}
	err = database.WithTx(ctx, c, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT player_id, total_money, total_clicks, best_streak, owned_power_ups, achievements, updated_at
			FROM players
			WHERE `+rankedPopulation+`
			ORDER BY `+rankingOrder+`
			LIMIT $1`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e Entry
			var powerUps, achievements pq.StringArray
			var updatedAt database.Time
			if err := rows.Scan(&e.PlayerID, &e.TotalMoney, &e.TotalClicks, &e.BestStreak, &powerUps, &achievements, &updatedAt); err != nil {
				return err
			}
			e.Rank = int64(len(board.Entries) + 1)
			e.PowerUpCount = len(powerUps)
			e.AchievementCount = len(achievements)
			e.LastActive = updatedAt.Time
			e.Status = Status(updatedAt.Time, now)
			board.Entries = append(board.Entries, e)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM players WHERE `+rankedPopulation).Scan(&board.TotalPlayers)
	})
	if err != nil {
		log.Error("Leaderboard query failed", "error", err, "limit", limit)
		return nil, database.Classify(op, err)
	}
	return board, nil
}

// GlobalStats aggregates the ranked population in a single statement.
// Empty populations produce zeros, never NULLs.
func (s *service) GlobalStats(ctx context.Context) (*StatsReport, error) {
	const op = "leaderboard.stats"
	c, err := database.Acquire(ctx, s.db, op)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	now := s.now()
	var st GlobalStats
	var avgMoney, avgClicks float64
	err = c.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_money), 0),
			COALESCE(SUM(total_clicks), 0),
			COALESCE(MAX(total_money), 0),
			COALESCE(MAX(total_clicks), 0),
			COALESCE(MAX(best_streak), 0),
			COALESCE(AVG(total_money), 0),
			COALESCE(AVG(total_clicks), 0),
			COUNT(*) FILTER (WHERE updated_at > $1),
			COUNT(*) FILTER (WHERE updated_at > $2)
		FROM players
		WHERE `+rankedPopulation,
		now.Add(-onlineWindow), now.Add(-recentWindow),
	).Scan(
		&st.TotalPlayers, &st.TotalMoneyEarned, &st.TotalClicks,
		&st.HighestEarnings, &st.MostClicks, &st.BestStreakGlobal,
		&avgMoney, &avgClicks, &st.ActivePlayers, &st.DailyActivePlayers,
	)
	if err != nil {
		log.Error("Global stats query failed", "error", err)
		return nil, database.Classify(op, err)
	}
	st.AverageMoney = int64(avgMoney)
	st.AverageClicks = int64(avgClicks)
	return &StatsReport{Stats: st, GeneratedAt: now}, nil
}

// PlayerRank ranks the whole population in the database and picks out one
// player. Players without earnings are not ranked.
func (s *service) PlayerRank(ctx context.Context, playerID string) (*PlayerRank, error) {
	const op = "leaderboard.rank"
	c, err := database.Acquire(ctx, s.db, op)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	r := &PlayerRank{PlayerID: playerID}
	err = c.QueryRowContext(ctx, `
		WITH ranked_players AS (
			SELECT
				player_id,
				total_money,
				ROW_NUMBER() OVER (ORDER BY `+rankingOrder+`) AS player_rank,
				COUNT(*) OVER () AS population
			FROM players
			WHERE `+rankedPopulation+`
		)
		SELECT player_rank, population, total_money
		FROM ranked_players
		WHERE player_id = $1`, playerID,
	).Scan(&r.Rank, &r.TotalPlayers, &r.Earnings)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("Player rank requested for unranked player", "player_id", playerID)
		return nil, apperr.NotFoundError(op, "Player not found or no earnings")
	}
	if err != nil {
		log.Error("Player rank query failed", "error", err, "player_id", playerID)
		return nil, database.Classify(op, err)
	}
	r.Percentile = Percentile(r.Rank, r.TotalPlayers)
	return r, nil
}
