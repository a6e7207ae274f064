package config

import "time"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config holds all configuration for the application.
type Config struct {
	Port        string
	Database    DatabaseConfig
	Static      StaticConfig
	Log         LogConfig
	Leaderboard LeaderboardConfig
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	Path            string
	ConnectTimeout  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type StaticConfig struct {
	Dir         string
	IndexFile   string
	FaviconFile string
}

type LogConfig struct {
	Level  string
	Format string
}

type LeaderboardConfig struct {
	DefaultLimit int
	MaxLimit     int
}
