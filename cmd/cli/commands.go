package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	leaderboardLimit int

	saveData         string
	saveMoney        int64
	saveClicks       int64
	saveStreak       int64
	savePowerUps     []string
	saveAchievements []string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)

	playerCmd.AddCommand(playerGetCmd, playerSaveCmd, playerResetCmd, playerRankCmd)

	leaderboardCmd.Flags().IntVar(&leaderboardLimit, "limit", 0, "Number of players to list (server default when unset)")

	playerSaveCmd.Flags().StringVar(&saveData, "data", "", "Raw JSON body to send instead of the individual flags")
	playerSaveCmd.Flags().Int64Var(&saveMoney, "money", 0, "Total money earned")
	playerSaveCmd.Flags().Int64Var(&saveClicks, "clicks", 0, "Total clicks")
	playerSaveCmd.Flags().Int64Var(&saveStreak, "streak", 0, "Best click streak")
	playerSaveCmd.Flags().StringSliceVar(&savePowerUps, "power-ups", nil, "Owned power-up ids")
	playerSaveCmd.Flags().StringSliceVar(&saveAchievements, "achievements", nil, "Unlocked achievement ids")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/metrics", nil)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Read or change a single player's progress",
}

var playerGetCmd = &cobra.Command{
	Use:   "get <player_id>",
	Short: "Fetch a player's progress, creating the player if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, playerPath(args[0], ""), nil)
	},
}

var playerSaveCmd = &cobra.Command{
	Use:   "save <player_id>",
	Short: "Overwrite a player's progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := saveBody()
		if err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, playerPath(args[0], "/save"), body)
	},
}

var playerResetCmd = &cobra.Command{
	Use:   "reset <player_id>",
	Short: "Reset a player's progress to zero",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodDelete, playerPath(args[0], "/reset"), nil)
	},
}

var playerRankCmd = &cobra.Command{
	Use:   "rank <player_id>",
	Short: "Show a player's global rank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, playerPath(args[0], "/rank"), nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "List the top players",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/leaderboard"
		if leaderboardLimit > 0 {
			endpoint += "?limit=" + strconv.Itoa(leaderboardLimit)
		}
		return performRequest(cmd.OutOrStdout(), http.MethodGet, endpoint, nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show global statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/api/stats", nil)
	},
}

func playerPath(playerID, suffix string) string {
	return "/api/player/" + url.PathEscape(playerID) + suffix
}

func saveBody() ([]byte, error) {
	if saveData != "" {
		if !json.Valid([]byte(saveData)) {
			return nil, fmt.Errorf("--data is not valid JSON")
		}
		return []byte(saveData), nil
	}
	if savePowerUps == nil {
		savePowerUps = []string{}
	}
	if saveAchievements == nil {
		saveAchievements = []string{}
	}
	return json.Marshal(map[string]any{
		"total_money":     saveMoney,
		"total_clicks":    saveClicks,
		"best_streak":     saveStreak,
		"owned_power_ups": savePowerUps,
		"achievements":    saveAchievements,
	})
}

func performRequest(out io.Writer, method, endpoint string, body []byte) error {
	target := host + endpoint
	fmt.Fprintf(out, "Making %s request to %s\n", method, target)

	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(respBody))

	return nil
}
