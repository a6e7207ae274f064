package leaderboard

import (
	"context"
	"sync"
	"time"
)

var _ LeaderboardService = (*Mock)(nil)

// Mock is a mock implementation of the LeaderboardService interface for testing.
type Mock struct {
	mu sync.Mutex

	LeaderboardFunc func(ctx context.Context, limit int) (*Board, error)
	GlobalStatsFunc func(ctx context.Context) (*StatsReport, error)
	PlayerRankFunc  func(ctx context.Context, playerID string) (*PlayerRank, error)

	LeaderboardCalls []int
	PlayerRankCalls  []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Leaderboard(ctx context.Context, limit int) (*Board, error) {
	m.mu.Lock()
	m.LeaderboardCalls = append(m.LeaderboardCalls, limit)
	m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, limit)
	}
	return &Board{Entries: []Entry{}, GeneratedAt: time.Now().UTC()}, nil
}

func (m *Mock) GlobalStats(ctx context.Context) (*StatsReport, error) {
	if m.GlobalStatsFunc != nil {
		return m.GlobalStatsFunc(ctx)
	}
	return &StatsReport{GeneratedAt: time.Now().UTC()}, nil
}

func (m *Mock) PlayerRank(ctx context.Context, playerID string) (*PlayerRank, error) {
	m.mu.Lock()
	m.PlayerRankCalls = append(m.PlayerRankCalls, playerID)
	m.mu.Unlock()
	if m.PlayerRankFunc != nil {
		return m.PlayerRankFunc(ctx, playerID)
	}
	return &PlayerRank{PlayerID: playerID}, nil
}
