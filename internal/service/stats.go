package service

import (
	"context"
	"fmt"

	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/constants"
	"scoreboard-tracker/internal/domain"
	"scoreboard-tracker/internal/repository"
	"scoreboard-tracker/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// PlayerStatsResponse is the full per-player analytics bundle: the player's
// leaderboard line, partner and nemesis relations, earned badges and their
// most recent matches.
type PlayerStatsResponse struct {
	stats.LeaderboardEntry
	BestPartner   *stats.PartnerStats `json:"best_partner"`
	Nemesis       *stats.NemesisStats `json:"nemesis"`
	Achievements  []stats.Badge       `json:"achievements"`
	RecentMatches []domain.Match      `json:"recent_matches"`
}

// StatsService recomputes every derived view from a fresh snapshot of the
// full match log. Nothing is cached or persisted; at a few hundred matches a
// recompute is cheaper than being wrong about staleness.
type StatsService struct {
	matchRepo   *repository.MatchRepository
	playerRepo  *repository.PlayerRepository
	rules       []stats.Rule
	summaryOpts stats.SummaryOptions
	logger      zerolog.Logger
}

func NewStatsService(matchRepo *repository.MatchRepository, playerRepo *repository.PlayerRepository, cfg *config.Config, logger zerolog.Logger) *StatsService {
	return &StatsService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		rules:      stats.DefaultRules(stats.DefaultThresholds()),
		summaryOpts: stats.SummaryOptions{
			MinGamesForWorstRate:  cfg.MinGamesForWorstRate,
			LosingStreakThreshold: cfg.LosingStreakThreshold,
		},
		logger: logger,
	}
}

// snapshot loads the player directory and the full match log in parallel and
// hands back a validated point-in-time view.
func (s *StatsService) snapshot(ctx context.Context) (*stats.Snapshot, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var players []domain.Player
	var matches []domain.Match

	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx, 0)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	snap, err := stats.NewSnapshot(players, matches)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}

	s.logger.Debug().
		Int("players", len(players)).
		Int("matches", len(matches)).
		Msg("snapshot loaded")
	return snap, nil
}

func (s *StatsService) Leaderboard(ctx context.Context, minGames int) ([]stats.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Leaderboard(stats.LeaderboardOptions{MinGames: minGames}), nil
}

// PlayerStats builds the analytics bundle for one player. Unknown ids are a
// 404 here even when matches reference them; the endpoint is about directory
// members.
func (s *StatsService) PlayerStats(ctx context.Context, playerID string) (*PlayerStatsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	player, err := s.playerRepo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	record := snap.PlayerStats(playerID)
	rel := snap.Relationships(playerID)

	recent := snap.MatchesFor(playerID, constants.RecentMatchesLimit)
	if recent == nil {
		recent = []domain.Match{}
	}

	return &PlayerStatsResponse{
		LeaderboardEntry: stats.LeaderboardEntry{
			WinLossStats: record,
			PlayerName:   player.Name,
			Nickname:     player.Nickname,
			AvatarEmoji:  player.AvatarEmoji,
		},
		BestPartner:   rel.BestPartner,
		Nemesis:       rel.Nemesis,
		Achievements:  stats.EvaluateAchievements(s.rules, record, rel),
		RecentMatches: recent,
	}, nil
}

func (s *StatsService) Rivalries(ctx context.Context) ([]stats.RivalryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Rivalries(), nil
}

func (s *StatsService) Summary(ctx context.Context) ([]stats.Highlight, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	entries := snap.Leaderboard(stats.LeaderboardOptions{})
	return stats.BuildSummary(entries, s.summaryOpts), nil
}
