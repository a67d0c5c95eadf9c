package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scoreboard-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// List returns matches newest-first. The reverse-timestamp id prefix makes
// ascending id order equal descending play order, so the primary key serves
// as the sort. limit <= 0 returns everything.
func (r *MatchRepository) List(ctx context.Context, limit int) ([]domain.Match, error) {
	query := `SELECT id, winner1_id, winner2_id, loser1_id, loser2_id,
		winner_score, loser_score, comment, recorded_by, played_at
		FROM matches ORDER BY id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}

func (r *MatchRepository) Get(ctx context.Context, id string) (*domain.Match, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, winner1_id, winner2_id, loser1_id, loser2_id,
		winner_score, loser_score, comment, recorded_by, played_at
		FROM matches WHERE id = ?`, id)

	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return &m, nil
}

func (r *MatchRepository) Create(ctx context.Context, m *domain.Match) error {
	var winnerScore, loserScore any
	if m.Score != nil {
		winnerScore = m.Score.Winner
		loserScore = m.Score.Loser
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO matches (id, winner1_id, winner2_id, loser1_id, loser2_id,
		winner_score, loser_score, comment, recorded_by, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Winner1ID, m.Winner2ID, m.Loser1ID, m.Loser2ID,
		winnerScore, loserScore, m.Comment, m.RecordedBy, m.PlayedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create match %s: %w", m.ID, err)
	}

	r.logger.Debug().
		Str("match_id", m.ID).
		Str("recorded_by", m.RecordedBy).
		Msg("match row inserted")
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for match %s: %w", id, err)
	}
	if affected == 0 {
		return ErrMatchNotFound
	}

	r.logger.Debug().Str("match_id", id).Msg("match row deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (domain.Match, error) {
	var (
		m           domain.Match
		winnerScore sql.NullInt64
		loserScore  sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.Winner1ID, &m.Winner2ID, &m.Loser1ID, &m.Loser2ID,
		&winnerScore, &loserScore, &m.Comment, &m.RecordedBy, &m.PlayedAt)
	if err != nil {
		return domain.Match{}, err
	}

	switch {
	case winnerScore.Valid && loserScore.Valid:
		m.Score = &domain.MatchScore{Winner: int(winnerScore.Int64), Loser: int(loserScore.Int64)}
	case winnerScore.Valid != loserScore.Valid:
		return domain.Match{}, fmt.Errorf("match %s has a half-set score pair", m.ID)
	}

	m.PlayedAt = m.PlayedAt.UTC()
	return m, nil
}
