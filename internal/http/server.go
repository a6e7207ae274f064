package http

import (
	"net/http"

	"github.com/mauv0809/tap-to-win/internal/config"
	"github.com/mauv0809/tap-to-win/internal/leaderboard"
	"github.com/mauv0809/tap-to-win/internal/metrics"
	"github.com/mauv0809/tap-to-win/internal/player"
)

func NewServer(players player.PlayerStore, board leaderboard.LeaderboardService, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Players:        players,
		Leaderboard:    board,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	// CORS sits outside the mux so preflight requests reach it for every path.
	server.handler = corsMiddleware(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), requestIDMiddleware, paramsMiddleware)
	api := func(route string, h http.Handler) http.Handler {
		return Chain(h, requestIDMiddleware, paramsMiddleware, s.instrument(route))
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", api("health", s.HealthCheckHandler()))

	s.Router.Handle("GET /api/player/{player_id}", api("get_player", s.GetPlayerHandler()))
	s.Router.Handle("POST /api/player/{player_id}/save", api("save_player", s.SavePlayerHandler()))
	s.Router.Handle("DELETE /api/player/{player_id}/reset", api("reset_player", s.ResetPlayerHandler()))
	s.Router.Handle("GET /api/player/{player_id}/rank", api("player_rank", s.PlayerRankHandler()))
	s.Router.Handle("GET /api/leaderboard", api("leaderboard", s.LeaderboardHandler()))
	s.Router.Handle("GET /api/stats", api("global_stats", s.GlobalStatsHandler()))

	s.Router.Handle("GET /{$}", s.IndexHandler())
	s.Router.Handle("GET /favicon.ico", s.FaviconHandler())
	s.Router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.Cfg.Static.Dir))))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
