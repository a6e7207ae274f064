package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/mauv0809/tap-to-win/internal/apperr"
	"github.com/mauv0809/tap-to-win/internal/player"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := loggerFromContext(r)
		logger.Debug("Received health check request")
		if err := s.Players.Ping(r.Context()); err != nil {
			logger.Error("Health check failed", "error", err)
			http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// GetPlayerHandler returns the player's progress, creating the player on first sight.
func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("player_id")
		p, err := s.Players.GetOrCreate(r.Context(), playerID)
		if err != nil {
			s.respondError(w, r, "get_player", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func (s *Server) SavePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "save_player"
		playerID := r.PathValue("player_id")

		var req saveRequest
		if err := decodeJSON(r, op, &req); err != nil {
			var badReq *badRequestError
			if errors.As(err, &badReq) {
				loggerFromContext(r).Warn("Rejected save body", "player_id", playerID, "error", err)
				respondJSON(w, http.StatusBadRequest, errorResponse{Detail: badReq.msg})
				return
			}
			s.respondError(w, r, op, err)
			return
		}
		progress, err := req.progress()
		if err != nil {
			s.respondError(w, r, op, err)
			return
		}

		if err := s.Players.Save(r.Context(), playerID, progress); err != nil {
			s.respondError(w, r, op, err)
			return
		}
		s.Metrics.IncPlayerSaves()
		respondJSON(w, http.StatusOK, ackResponse{Success: true, Message: "Data saved successfully"})
	}
}

// progress checks that every field is present and valid.
func (req saveRequest) progress() (player.Progress, error) {
	const op = "save_player"
	missing := func(field string) error {
		return apperr.InvalidError(op, fmt.Sprintf("field required: %s", field))
	}
	switch {
	case req.TotalMoney == nil:
		return player.Progress{}, missing("total_money")
	case req.TotalClicks == nil:
		return player.Progress{}, missing("total_clicks")
	case req.BestStreak == nil:
		return player.Progress{}, missing("best_streak")
	case req.OwnedPowerUps == nil:
		return player.Progress{}, missing("owned_power_ups")
	case req.Achievements == nil:
		return player.Progress{}, missing("achievements")
	}
	progress := player.Progress{
		TotalMoney:    *req.TotalMoney,
		TotalClicks:   *req.TotalClicks,
		BestStreak:    *req.BestStreak,
		OwnedPowerUps: *req.OwnedPowerUps,
		Achievements:  *req.Achievements,
	}
	if err := progress.Validate(); err != nil {
		return player.Progress{}, err
	}
	return progress, nil
}

func (s *Server) ResetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("player_id")
		if err := s.Players.Reset(r.Context(), playerID); err != nil {
			s.respondError(w, r, "reset_player", err)
			return
		}
		s.Metrics.IncPlayerResets()
		respondJSON(w, http.StatusOK, ackResponse{Success: true, Message: "Player data reset successfully"})
	}
}

// LeaderboardHandler serves the top players. limit defaults to the configured
// value and is capped at the configured maximum.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "leaderboard"
		limit := s.Cfg.Leaderboard.DefaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				s.respondError(w, r, op, apperr.InvalidError(op, "limit must be an integer"))
				return
			}
			if parsed < 1 {
				s.respondError(w, r, op, apperr.InvalidError(op, "limit must be at least 1"))
				return
			}
			limit = min(parsed, s.Cfg.Leaderboard.MaxLimit)
		}

		board, err := s.Leaderboard.Leaderboard(r.Context(), limit)
		if err != nil {
			s.respondError(w, r, op, err)
			return
		}
		respondJSON(w, http.StatusOK, board)
	}
}

func (s *Server) GlobalStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := s.Leaderboard.GlobalStats(r.Context())
		if err != nil {
			s.respondError(w, r, "global_stats", err)
			return
		}
		respondJSON(w, http.StatusOK, report)
	}
}

func (s *Server) PlayerRankHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rank, err := s.Leaderboard.PlayerRank(r.Context(), r.PathValue("player_id"))
		if err != nil {
			s.respondError(w, r, "player_rank", err)
			return
		}
		respondJSON(w, http.StatusOK, rank)
	}
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(s.Cfg.Static.Dir, s.Cfg.Static.IndexFile))
	}
}

func (s *Server) FaviconHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(s.Cfg.Static.Dir, s.Cfg.Static.FaviconFile))
	}
}
