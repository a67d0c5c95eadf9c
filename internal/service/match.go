package service

import (
	"context"
	"fmt"
	"time"

	"scoreboard-tracker/internal/constants"
	"scoreboard-tracker/internal/domain"
	"scoreboard-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// CreateMatchRequest is the payload for recording a finished match. The
// score fields are optional but must be set together; played_at defaults to
// the time of recording.
type CreateMatchRequest struct {
	Winner1ID   string     `json:"winner1_id"`
	Winner2ID   string     `json:"winner2_id"`
	Loser1ID    string     `json:"loser1_id"`
	Loser2ID    string     `json:"loser2_id"`
	WinnerScore *int       `json:"winner_score"`
	LoserScore  *int       `json:"loser_score"`
	Comment     string     `json:"comment"`
	PlayedAt    *time.Time `json:"played_at"`
}

type MatchService struct {
	repo   *repository.MatchRepository
	logger zerolog.Logger
}

func NewMatchService(repo *repository.MatchRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{repo: repo, logger: logger}
}

// List returns recent matches newest-first, all of them when limit <= 0.
func (s *MatchService) List(ctx context.Context, limit int) ([]domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.List(ctx, limit)
}

// Create validates and records a match. Validation happens here, before the
// match enters the log: a match with overlapping teams would corrupt every
// later streak and relationship computation.
func (s *MatchService) Create(ctx context.Context, req CreateMatchRequest, recordedBy string) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := validateCreateMatch(req); err != nil {
		return nil, err
	}

	playedAt := time.Now().UTC()
	if req.PlayedAt != nil {
		playedAt = req.PlayedAt.UTC()
	}

	id, err := domain.NewMatchID(playedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to build match id: %w", err)
	}

	match := &domain.Match{
		ID:         id,
		Winner1ID:  req.Winner1ID,
		Winner2ID:  req.Winner2ID,
		Loser1ID:   req.Loser1ID,
		Loser2ID:   req.Loser2ID,
		Comment:    req.Comment,
		RecordedBy: recordedBy,
		PlayedAt:   playedAt,
	}
	if req.WinnerScore != nil {
		match.Score = &domain.MatchScore{Winner: *req.WinnerScore, Loser: *req.LoserScore}
	}

	if err := s.repo.Create(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("match_id", match.ID).
		Str("recorded_by", recordedBy).
		Time("played_at", match.PlayedAt).
		Msg("match recorded")
	return match, nil
}

func (s *MatchService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("match_id", id).Msg("match deleted")
	return nil
}

func validateCreateMatch(req CreateMatchRequest) error {
	ids := [4]string{req.Winner1ID, req.Winner2ID, req.Loser1ID, req.Loser2ID}
	for i := 0; i < len(ids); i++ {
		if ids[i] == "" {
			return fmt.Errorf("%w: all four player ids are required", ErrInvalidInput)
		}
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == ids[j] {
				return fmt.Errorf("%w: player %s cannot appear twice in one match", ErrInvalidInput, ids[i])
			}
		}
	}

	if (req.WinnerScore == nil) != (req.LoserScore == nil) {
		return fmt.Errorf("%w: winner_score and loser_score must be set together", ErrInvalidInput)
	}
	if req.WinnerScore != nil && (*req.WinnerScore < 0 || *req.LoserScore < 0) {
		return fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	return nil
}
