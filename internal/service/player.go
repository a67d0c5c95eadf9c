package service

import (
	"context"
	"errors"
	"fmt"

	"scoreboard-tracker/internal/constants"
	"scoreboard-tracker/internal/domain"
	"scoreboard-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// ErrInvalidInput marks a request the caller got wrong. Handlers map it to a
// 400 response.
var ErrInvalidInput = errors.New("invalid input")

type CreatePlayerRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	AvatarEmoji string `json:"avatar_emoji"`
}

// UpdatePlayerRequest carries a partial update; nil fields keep their
// current value.
type UpdatePlayerRequest struct {
	Name        *string `json:"name"`
	Nickname    *string `json:"nickname"`
	AvatarEmoji *string `json:"avatar_emoji"`
}

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.List(ctx)
}

func (s *PlayerService) Get(ctx context.Context, id string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.Get(ctx, id)
}

func (s *PlayerService) Create(ctx context.Context, req CreatePlayerRequest) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if req.ID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: player id and name are required", ErrInvalidInput)
	}
	if req.AvatarEmoji == "" {
		req.AvatarEmoji = domain.DefaultAvatar
	}

	player := &domain.Player{
		ID:          req.ID,
		Name:        req.Name,
		Nickname:    req.Nickname,
		AvatarEmoji: req.AvatarEmoji,
	}

	if err := s.repo.Create(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info().Str("player_id", player.ID).Str("name", player.Name).Msg("player created")
	return player, nil
}

// Update applies a partial update on top of the stored player, so callers
// can rename someone without resending the avatar.
func (s *PlayerService) Update(ctx context.Context, id string, req UpdatePlayerRequest) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		player.Name = *req.Name
	}
	if req.Nickname != nil {
		player.Nickname = *req.Nickname
	}
	if req.AvatarEmoji != nil {
		player.AvatarEmoji = *req.AvatarEmoji
	}

	if player.Name == "" {
		return nil, fmt.Errorf("%w: player name cannot be empty", ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info().Str("player_id", player.ID).Msg("player updated")
	return player, nil
}

func (s *PlayerService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("player_id", id).Msg("player deleted")
	return nil
}
