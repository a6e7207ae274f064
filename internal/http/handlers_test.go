package http

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/mauv0809/tap-to-win/internal/apperr"
	"github.com/mauv0809/tap-to-win/internal/config"
	"github.com/mauv0809/tap-to-win/internal/database"
	"github.com/mauv0809/tap-to-win/internal/leaderboard"
	"github.com/mauv0809/tap-to-win/internal/metrics"
	"github.com/mauv0809/tap-to-win/internal/player"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:        "0",
		Database:    config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
		Static:      config.StaticConfig{Dir: t.TempDir(), IndexFile: "index.html", FaviconFile: "generated-icon.png"},
		Leaderboard: config.LeaderboardConfig{DefaultLimit: 10, MaxLimit: 100},
	}
}

// setupTestServer initializes a new server backed by an in-memory database.
func setupTestServer(t *testing.T) (*Server, *sql.DB, func()) {
	t.Helper()

	cfg := testConfig(t)
	db, dbTeardown, err := database.InitDB(cfg.Database)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	server := NewServer(player.New(db), leaderboard.New(db), metricsSvc, metricsHandler, cfg)
	return server, db, dbTeardown
}

// setupMockServer initializes a server whose dependencies are all mocks.
func setupMockServer(t *testing.T) (*Server, *player.MockStore, *leaderboard.Mock, *metrics.Mock) {
	t.Helper()
	players := player.NewMock()
	board := leaderboard.NewMock()
	m := metrics.NewMock()
	return NewServer(players, board, m, http.NotFoundHandler(), testConfig(t)), players, board, m
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := do(t, server, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestHealthCheckHandler_DatabaseDown(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	require.NoError(t, db.Close())

	rr := do(t, server, "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestGetPlayerHandler_CreatesPlayer(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := do(t, server, "GET", "/api/player/alice", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"player_id": "alice",
		"total_money": 0,
		"total_clicks": 0,
		"best_streak": 0,
		"owned_power_ups": [],
		"achievements": []
	}`, rr.Body.String())
}

func TestSaveAndGetPlayer(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	body := `{"total_money":100,"total_clicks":50,"best_streak":5,"owned_power_ups":["double_tap"],"achievements":["first_click"]}`
	rr := do(t, server, "POST", "/api/player/alice/save", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"success":true,"message":"Data saved successfully"}`, rr.Body.String())

	rr = do(t, server, "GET", "/api/player/alice", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"player_id": "alice",
		"total_money": 100,
		"total_clicks": 50,
		"best_streak": 5,
		"owned_power_ups": ["double_tap"],
		"achievements": ["first_click"]
	}`, rr.Body.String())
}

func TestSavePlayerHandler_Validation(t *testing.T) {
	server, players, _, _ := setupMockServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDetail string
	}{
		{"malformed json", `{"total_money":`, http.StatusBadRequest, "Invalid JSON"},
		{"empty body", ``, http.StatusBadRequest, "Invalid JSON"},
		{"missing field", `{"total_money":1,"total_clicks":1,"best_streak":1,"owned_power_ups":[]}`, http.StatusUnprocessableEntity, "field required: achievements"},
		{"null array", `{"total_money":1,"total_clicks":1,"best_streak":1,"owned_power_ups":null,"achievements":[]}`, http.StatusUnprocessableEntity, "field required: owned_power_ups"},
		{"negative money", `{"total_money":-5,"total_clicks":1,"best_streak":1,"owned_power_ups":[],"achievements":[]}`, http.StatusUnprocessableEntity, "total_money must be non-negative"},
		{"wrong type", `{"total_money":"lots","total_clicks":1,"best_streak":1,"owned_power_ups":[],"achievements":[]}`, http.StatusUnprocessableEntity, ""},
		{"empty token", `{"total_money":1,"total_clicks":1,"best_streak":1,"owned_power_ups":[""],"achievements":[]}`, http.StatusUnprocessableEntity, "owned_power_ups[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, server, "POST", "/api/player/alice/save", tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, decode[errorResponse](t, rr).Detail, tt.wantDetail)
		})
	}
	assert.Empty(t, players.SaveCalls, "invalid bodies must never reach the store")
}

func TestResetPlayerHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	body := `{"total_money":9,"total_clicks":9,"best_streak":9,"owned_power_ups":["a"],"achievements":["b"]}`
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/api/player/carol/save", body).Code)

	rr := do(t, server, "DELETE", "/api/player/carol/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Player data reset successfully"}`, rr.Body.String())

	rr = do(t, server, "GET", "/api/player/carol", "")
	got := decode[player.Player](t, rr)
	assert.Zero(t, got.TotalMoney)
	assert.Empty(t, got.OwnedPowerUps)

	rr = do(t, server, "DELETE", "/api/player/nobody/reset", "")
	assert.Equal(t, http.StatusOK, rr.Code, "resetting an unknown player succeeds")
}

func TestAggregateHandlers_Scenario(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	require.Equal(t, http.StatusOK, do(t, server, "GET", "/api/player/alice", "").Code)
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/api/player/alice/save",
		`{"total_money":100,"total_clicks":50,"best_streak":5,"owned_power_ups":["double_tap"],"achievements":["first_click"]}`).Code)
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/api/player/bob/save",
		`{"total_money":200,"total_clicks":30,"best_streak":2,"owned_power_ups":[],"achievements":[]}`).Code)

	rr := do(t, server, "GET", "/api/leaderboard?limit=10", "")
	require.Equal(t, http.StatusOK, rr.Code)
	board := decode[leaderboard.Board](t, rr)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "bob", board.Entries[0].PlayerID)
	assert.Equal(t, int64(1), board.Entries[0].Rank)
	assert.Equal(t, "alice", board.Entries[1].PlayerID)
	assert.Equal(t, int64(2), board.Entries[1].Rank)
	assert.Equal(t, leaderboard.StatusOnline, board.Entries[1].Status)
	assert.Equal(t, int64(2), board.TotalPlayers)
	assert.WithinDuration(t, time.Now(), board.GeneratedAt, time.Minute)

	rr = do(t, server, "GET", "/api/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	report := decode[leaderboard.StatsReport](t, rr)
	assert.Equal(t, int64(2), report.Stats.TotalPlayers)
	assert.Equal(t, int64(300), report.Stats.TotalMoneyEarned)
	assert.Equal(t, int64(2), report.Stats.ActivePlayers)

	rr = do(t, server, "GET", "/api/player/alice/rank", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"player_id":"alice","rank":2,"total_players":2,"percentile":50,"earnings":100}`, rr.Body.String())
}

func TestPlayerRankHandler_NotFound(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	require.Equal(t, http.StatusOK, do(t, server, "GET", "/api/player/newbie", "").Code)

	rr := do(t, server, "GET", "/api/player/newbie/rank", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Player not found or no earnings", decode[errorResponse](t, rr).Detail)
}

func TestGlobalStatsHandler_Empty(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := do(t, server, "GET", "/api/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Stats map[string]any `json:"global_stats"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Stats, 10)
	for field, value := range body.Stats {
		assert.EqualValues(t, 0, value, field)
	}
}

func TestLeaderboardHandler_Limit(t *testing.T) {
	server, _, board, _ := setupMockServer(t)

	assert.Equal(t, http.StatusOK, do(t, server, "GET", "/api/leaderboard", "").Code)
	assert.Equal(t, http.StatusOK, do(t, server, "GET", "/api/leaderboard?limit=3", "").Code)
	assert.Equal(t, http.StatusOK, do(t, server, "GET", "/api/leaderboard?limit=5000", "").Code)
	assert.Equal(t, []int{10, 3, 100}, board.LeaderboardCalls)

	for _, raw := range []string{"abc", "0", "-1", "2.5"} {
		rr := do(t, server, "GET", "/api/leaderboard?limit="+raw, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, raw)
	}
	assert.Len(t, board.LeaderboardCalls, 3)
}

func TestHandlers_StoreErrors(t *testing.T) {
	server, players, board, m := setupMockServer(t)
	players.GetOrCreateFunc = func(ctx context.Context, playerID string) (*player.Player, error) {
		return nil, apperr.UnavailableError("player.get_or_create", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
	}
	players.SaveFunc = func(ctx context.Context, playerID string, progress player.Progress) error {
		return apperr.InternalError("player.save", errors.New(`pq: value too long for type character varying(64)`))
	}
	players.ResetFunc = func(ctx context.Context, playerID string) error {
		return apperr.InternalError("player.reset", errors.New("pq: deadlock detected"))
	}
	board.GlobalStatsFunc = func(ctx context.Context) (*leaderboard.StatsReport, error) {
		return nil, apperr.InternalError("leaderboard.stats", errors.New("pq: canceling statement"))
	}

	rr := do(t, server, "GET", "/api/player/alice", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "Database connection failed", decode[errorResponse](t, rr).Detail)

	rr = do(t, server, "POST", "/api/player/alice/save",
		`{"total_money":1,"total_clicks":1,"best_streak":1,"owned_power_ups":[],"achievements":[]}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "pq: value too long for type character varying(64)", decode[errorResponse](t, rr).Detail)

	rr = do(t, server, "DELETE", "/api/player/alice/reset", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = do(t, server, "GET", "/api/stats", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	assert.Equal(t, 1, m.StoreErrors("get_player", "unavailable"))
	assert.Equal(t, 1, m.StoreErrors("save_player", "internal"))
	assert.Zero(t, m.PlayerSaves())
	assert.Zero(t, m.PlayerResets())
	assert.Equal(t, 1, m.Requests("get_player"))
}

func TestCORS(t *testing.T) {
	server, _, _, _ := setupMockServer(t)

	t.Run("preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, "/api/player/alice/save", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "https://game.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://game.example", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "content-type", rr.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("simple request", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "/api/stats", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	server, _, _, _ := setupMockServer(t)

	rr := do(t, server, "GET", "/api/stats", "")
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

	req, err := http.NewRequest(http.MethodGet, "/api/stats", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(requestIDHeader))
}

func TestStaticHandlers(t *testing.T) {
	server, _, _, _ := setupMockServer(t)
	dir := server.Cfg.Static.Dir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Tap to Win</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generated-icon.png"), []byte("\x89PNG\r\n\x1a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.js"), []byte("console.log('tap')"), 0o644))

	rr := do(t, server, "GET", "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Tap to Win")

	rr = do(t, server, "GET", "/favicon.ico", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))

	rr = do(t, server, "GET", "/static/game.js", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "tap")

	rr = do(t, server, "GET", "/unknown", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	require.Equal(t, http.StatusOK, do(t, server, "GET", "/api/player/alice", "").Code)

	rr := do(t, server, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `tapwin_http_requests_total{method="GET",route="get_player",status="200"} 1`)
}
