package leaderboard

import (
	"database/sql"
	"time"
)

// ActivityStatus is derived from how recently a player saved or reset.
type ActivityStatus string

const (
	StatusOnline  ActivityStatus = "online"
	StatusRecent  ActivityStatus = "recent"
	StatusOffline ActivityStatus = "offline"
)

const (
	onlineWindow = time.Hour
	recentWindow = 24 * time.Hour
)

// Entry is one ranked row of the leaderboard.
type Entry struct {
	Rank             int64          `json:"rank"`
	PlayerID         string         `json:"player_id"`
	TotalMoney       int64          `json:"total_money"`
	TotalClicks      int64          `json:"total_clicks"`
	BestStreak       int64          `json:"best_streak"`
	AchievementCount int            `json:"achievement_count"`
	PowerUpCount     int            `json:"power_up_count"`
	Status           ActivityStatus `json:"status"`
	LastActive       time.Time      `json:"last_active"`
}

// Board is a leaderboard page plus the size of the ranked population.
type Board struct {
	Entries      []Entry   `json:"leaderboard"`
	TotalPlayers int64     `json:"total_players"`
	GeneratedAt  time.Time `json:"last_updated"`
}

// GlobalStats aggregates every player with positive earnings.
type GlobalStats struct {
	TotalPlayers       int64 `json:"total_players"`
	TotalMoneyEarned   int64 `json:"total_money_earned"`
	TotalClicks        int64 `json:"total_clicks"`
	HighestEarnings    int64 `json:"highest_earnings"`
	MostClicks         int64 `json:"most_clicks"`
	BestStreakGlobal   int64 `json:"best_streak_global"`
	AverageMoney       int64 `json:"average_money"`
	AverageClicks      int64 `json:"average_clicks"`
	ActivePlayers      int64 `json:"active_players"`
	DailyActivePlayers int64 `json:"daily_active_players"`
}

type StatsReport struct {
	Stats       GlobalStats `json:"global_stats"`
	GeneratedAt time.Time   `json:"last_updated"`
}

// PlayerRank locates one player within the ranked population.
type PlayerRank struct {
	PlayerID     string  `json:"player_id"`
	Rank         int64   `json:"rank"`
	TotalPlayers int64   `json:"total_players"`
	Percentile   float64 `json:"percentile"`
	Earnings     int64   `json:"earnings"`
}

// Option configures a service.
type Option func(*service)

// WithClock overrides the time source used for activity windows and
// response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	db  *sql.DB
	now func() time.Time
}
