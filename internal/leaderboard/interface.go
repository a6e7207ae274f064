package leaderboard

import "context"

// LeaderboardService computes read-only aggregates over players with
// positive earnings. Every view orders by total_money desc, total_clicks
// desc, player_id asc.
type LeaderboardService interface {
	Leaderboard(ctx context.Context, limit int) (*Board, error)
	GlobalStats(ctx context.Context) (*StatsReport, error)
	PlayerRank(ctx context.Context, playerID string) (*PlayerRank, error)
}
