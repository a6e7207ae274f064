package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tap-to-win/internal/config"
	"github.com/mauv0809/tap-to-win/internal/database"
	"github.com/mauv0809/tap-to-win/internal/player"
	"github.com/spf13/cobra"
)

var (
	count        int
	snapshotPath string
	fromPath     string
	randSeed     int64
)

var rootCmd = &cobra.Command{
	Use:   "tapwin-seeder",
	Short: "Fill the players table with generated or snapshotted progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.Log.ConfigureLogger()

		db, dbTeardown, err := database.InitDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer dbTeardown()

		var seeds []seedPlayer
		if fromPath != "" {
			seeds, err = readSnapshot(fromPath)
			if err != nil {
				return err
			}
			log.Info("Loaded snapshot", "path", fromPath, "players", len(seeds))
		} else {
			seeds = generate(count, randSeed)
			log.Info("Generated players", "players", len(seeds), "seed", randSeed)
		}

		if snapshotPath != "" {
			if err := writeSnapshot(snapshotPath, seeds); err != nil {
				return err
			}
			log.Info("Wrote snapshot", "path", snapshotPath)
		}

		startTime := time.Now()
		if err := seed(cmd.Context(), player.New(db), seeds); err != nil {
			return err
		}
		log.Info("Successfully seeded players.", "players", len(seeds), "duration", time.Since(startTime))
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVar(&count, "count", 100, "Number of players to generate")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Write the seeded players to this msgpack file")
	rootCmd.Flags().StringVar(&fromPath, "from", "", "Replay players from a msgpack snapshot instead of generating")
	rootCmd.Flags().Int64Var(&randSeed, "seed", time.Now().UnixNano(), "Random seed for generated progress")
}

func main() {
	log.Info("Starting database seeder...")
	if err := rootCmd.Execute(); err != nil {
		log.Error("Seeder failed", "error", err)
		os.Exit(1)
	}
}
