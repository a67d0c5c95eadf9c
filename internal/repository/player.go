package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"scoreboard-tracker/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")
)

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, nickname, avatar_emoji FROM players ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Nickname, &p.AvatarEmoji); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	var p domain.Player
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, nickname, avatar_emoji FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Nickname, &p.AvatarEmoji)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return &p, nil
}

func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO players (id, name, nickname, avatar_emoji) VALUES (?, ?, ?, ?)`,
		player.ID, player.Name, player.Nickname, player.AvatarEmoji)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrPlayerExists
		}
		return fmt.Errorf("failed to create player %s: %w", player.ID, err)
	}

	r.logger.Debug().Str("player_id", player.ID).Msg("player row inserted")
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, player *domain.Player) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE players SET name = ?, nickname = ?, avatar_emoji = ? WHERE id = ?`,
		player.Name, player.Nickname, player.AvatarEmoji, player.ID)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", player.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for player %s: %w", player.ID, err)
	}
	if affected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for player %s: %w", id, err)
	}
	if affected == 0 {
		return ErrPlayerNotFound
	}

	r.logger.Debug().Str("player_id", id).Msg("player row deleted")
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
