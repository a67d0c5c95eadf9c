package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// dsn appends the driver pragmas to the database path. Pragmas ride on the
// connection string so every pooled connection picks them up, not only the
// one that happened to run an Exec.
func dsn(path string) string {
	params := url.Values{}
	params.Set("_journal_mode", "WAL")
	params.Set("_synchronous", "NORMAL")
	params.Set("_busy_timeout", "5000")
	params.Set("_foreign_keys", "on")
	return fmt.Sprintf("file:%s?%s", path, params.Encode())
}

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Str("path", cfg.DBPath).Msg("opening sqlite database")

	db, err := sql.Open("sqlite3", dsn(cfg.DBPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	// sql.Open is lazy; fail now on a bad path rather than on the first query.
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to reach database at %s: %w", cfg.DBPath, err)
	}

	if err := Migrate(db, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database ready")
	return db, nil
}

// Migrate applies the embedded goose migrations. Exported so tests can bring
// an in-memory database to the current schema.
func Migrate(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Debug().Msg("database schema up to date")
	return nil
}
