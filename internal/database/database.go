package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/mauv0809/tap-to-win/internal/config"
	"github.com/mauv0809/tap-to-win/migrations"
	"github.com/pressly/goose/v3"
)

// uniqueViolation is the postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = pq.ErrorCode("23505")

// InitDB opens the connection pool, verifies the server is reachable and
// brings the schema up to date. The returned teardown closes the pool.
func InitDB(cfg config.DatabaseConfig) (*sql.DB, func(), error) {
	log.Info("Initializing database", "driver", cfg.Driver)
	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	configurePool(db, cfg)

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	ctx := context.Background()
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db, cfg.Driver); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func configurePool(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.Driver == config.DriverSQLite {
		// A second connection to ":memory:" would open a different, empty database.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

func migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(log.Default())
	dir := "postgres"
	if driver == config.DriverSQLite {
		dir = "sqlite"
	}
	if err := goose.SetDialect(driver); err != nil {
		return err
	}
	return goose.Up(db, dir)
}

// IsUniqueViolation reports whether err is a unique or primary key
// constraint failure from either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
