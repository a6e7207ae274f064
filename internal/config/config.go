package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and .env file.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PGHOST", "localhost")
	v.SetDefault("PGPORT", 5432)
	v.SetDefault("PGDATABASE", "")
	v.SetDefault("PGUSER", "")
	v.SetDefault("PGPASSWORD", "")
	v.SetDefault("PGSSLMODE", "disable")
	v.SetDefault("DB_PATH", "tapwin.db")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("STATIC_DIR", ".")
	v.SetDefault("INDEX_FILE", "index.html")
	v.SetDefault("FAVICON_FILE", "generated-icon.png")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LEADERBOARD_DEFAULT_LIMIT", 10)
	v.SetDefault("LEADERBOARD_MAX_LIMIT", 100)
	return v
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port: v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("PGHOST"),
			Port:            v.GetInt("PGPORT"),
			Name:            v.GetString("PGDATABASE"),
			User:            v.GetString("PGUSER"),
			Password:        v.GetString("PGPASSWORD"),
			SSLMode:         v.GetString("PGSSLMODE"),
			Path:            v.GetString("DB_PATH"),
			ConnectTimeout:  v.GetDuration("DB_CONNECT_TIMEOUT"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Static: StaticConfig{
			Dir:         v.GetString("STATIC_DIR"),
			IndexFile:   v.GetString("INDEX_FILE"),
			FaviconFile: v.GetString("FAVICON_FILE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Leaderboard: LeaderboardConfig{
			DefaultLimit: v.GetInt("LEADERBOARD_DEFAULT_LIMIT"),
			MaxLimit:     v.GetInt("LEADERBOARD_MAX_LIMIT"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Name == "" {
			return fmt.Errorf("required environment variable PGDATABASE is not set")
		}
		if c.Database.User == "" {
			return fmt.Errorf("required environment variable PGUSER is not set")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH must not be empty for the sqlite3 driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.Leaderboard.DefaultLimit < 1 || c.Leaderboard.MaxLimit < 1 {
		return fmt.Errorf("leaderboard limits must be positive")
	}
	if c.Leaderboard.DefaultLimit > c.Leaderboard.MaxLimit {
		return fmt.Errorf("LEADERBOARD_DEFAULT_LIMIT (%d) exceeds LEADERBOARD_MAX_LIMIT (%d)",
			c.Leaderboard.DefaultLimit, c.Leaderboard.MaxLimit)
	}
	return nil
}

// DSN returns the data source name for the configured driver: a lib/pq
// keyword string for postgres, the file path for sqlite.
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	parts := []string{
		"host=" + quoteDSNValue(c.Host),
		fmt.Sprintf("port=%d", c.Port),
		"user=" + quoteDSNValue(c.User),
		"dbname=" + quoteDSNValue(c.Name),
		"sslmode=" + quoteDSNValue(c.SSLMode),
	}
	if c.Password != "" {
		parts = append(parts, "password="+quoteDSNValue(c.Password))
	}
	if secs := int(c.ConnectTimeout / time.Second); secs > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", secs))
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSNValue single-quotes v for a lib/pq keyword string, where a
// backslash escapes the next character inside quotes.
func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// ConfigureLogger applies level and formatter to the package-level logger.
func (c LogConfig) ConfigureLogger() {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		log.Warn("Unknown log level, defaulting to info", "level", c.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.Format == "text" {
		log.SetFormatter(log.TextFormatter)
	} else {
		log.SetFormatter(log.JSONFormatter)
	}
}
