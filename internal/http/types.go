package http

import (
	"net/http"

	"github.com/mauv0809/tap-to-win/internal/config"
	"github.com/mauv0809/tap-to-win/internal/leaderboard"
	"github.com/mauv0809/tap-to-win/internal/metrics"
	"github.com/mauv0809/tap-to-win/internal/player"
)

type Server struct {
	Players        player.PlayerStore
	Leaderboard    leaderboard.LeaderboardService
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux

	handler http.Handler
}

// saveRequest is the body of a save. Every field is required; pointers
// distinguish a missing field from a zero value.
type saveRequest struct {
	TotalMoney    *int64    `json:"total_money"`
	TotalClicks   *int64    `json:"total_clicks"`
	BestStreak    *int64    `json:"best_streak"`
	OwnedPowerUps *[]string `json:"owned_power_ups"`
	Achievements  *[]string `json:"achievements"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
