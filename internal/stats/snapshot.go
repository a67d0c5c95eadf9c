// Package stats turns an immutable snapshot of recorded matches into derived
// standings: per-player win/loss records, the leaderboard, partner and
// nemesis relations, pairwise rivalries, achievement badges and summary
// highlights. Every computation is a pure function of the snapshot; nothing
// here performs I/O or holds state between calls.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"scoreboard-tracker/internal/domain"
)

// ErrInvalidMatch marks a match that would corrupt aggregation: a team
// overlap or a player appearing twice. Validation happens once, at snapshot
// construction; everything downstream is total over a valid snapshot.
var ErrInvalidMatch = errors.New("invalid match")

// Snapshot is a point-in-time view of the player directory and match log.
// Matches are held newest-first (played_at descending, id ascending on equal
// timestamps) so every aggregation walks history in one deterministic order.
type Snapshot struct {
	players map[string]domain.Player
	matches []domain.Match
}

// NewSnapshot validates every match and fixes the iteration order. A match
// whose four player ids are not pairwise distinct is rejected with a
// descriptive error. Score pairs need no checking here: the domain models a
// score as a single optional pair, so a half-set score cannot reach us.
func NewSnapshot(players []domain.Player, matches []domain.Match) (*Snapshot, error) {
	byID := make(map[string]domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	for _, m := range matches {
		if err := validateMatch(m); err != nil {
			return nil, err
		}
	}

	ordered := make([]domain.Match, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].PlayedAt.Equal(ordered[j].PlayedAt) {
			return ordered[i].PlayedAt.After(ordered[j].PlayedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	return &Snapshot{players: byID, matches: ordered}, nil
}

func validateMatch(m domain.Match) error {
	ids := [4]string{m.Winner1ID, m.Winner2ID, m.Loser1ID, m.Loser2ID}
	for i := 0; i < len(ids); i++ {
		if ids[i] == "" {
			return fmt.Errorf("%w: match %s has an empty player id", ErrInvalidMatch, m.ID)
		}
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == ids[j] {
				return fmt.Errorf("%w: match %s lists player %s twice", ErrInvalidMatch, m.ID, ids[i])
			}
		}
	}
	return nil
}

// MatchesFor returns up to limit of the player's most recent matches,
// newest-first. A limit <= 0 returns the player's full history.
func (s *Snapshot) MatchesFor(playerID string, limit int) []domain.Match {
	var recent []domain.Match
	for _, m := range s.matches {
		if m.Winner1ID != playerID && m.Winner2ID != playerID &&
			m.Loser1ID != playerID && m.Loser2ID != playerID {
			continue
		}
		recent = append(recent, m)
		if limit > 0 && len(recent) == limit {
			break
		}
	}
	return recent
}

// Player resolves an id against the directory. Ids referenced by matches but
// missing from the directory degrade to the id as display name rather than
// failing; match history outlives player deletion.
func (s *Snapshot) Player(id string) domain.Player {
	if p, ok := s.players[id]; ok {
		return p
	}
	return domain.Player{ID: id, Name: id, AvatarEmoji: domain.DefaultAvatar}
}

// playerIDs returns the union of directory players and match participants,
// sorted ascending. Players known only from matches still count toward
// standings; otherwise win totals would not balance the match log.
func (s *Snapshot) playerIDs() []string {
	seen := make(map[string]bool, len(s.players))
	for id := range s.players {
		seen[id] = true
	}
	for _, m := range s.matches {
		seen[m.Winner1ID] = true
		seen[m.Winner2ID] = true
		seen[m.Loser1ID] = true
		seen[m.Loser2ID] = true
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
