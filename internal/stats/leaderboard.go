package stats

import "sort"

// LeaderboardEntry is a player's ranked standing with display fields.
type LeaderboardEntry struct {
	WinLossStats
	PlayerName  string `json:"player_name"`
	Nickname    string `json:"nickname"`
	AvatarEmoji string `json:"avatar_emoji"`
}

// LeaderboardOptions filters the standings. MinGames <= 0 keeps everyone,
// including directory players who have never played.
type LeaderboardOptions struct {
	MinGames int
}

// Leaderboard ranks every known player: win rate descending, then total
// games descending (volume wins at equal rate), then player id ascending.
// The triple makes the order strict, so equal inputs always produce the
// identical standings.
//
// The ranking covers the union of the player directory and match
// participants. A player referenced only by matches still appears, with the
// id standing in for the display name.
func (s *Snapshot) Leaderboard(opts LeaderboardOptions) []LeaderboardEntry {
	outcomes := make(map[string][]bool) // newest-first per player
	for _, m := range s.matches {
		for _, id := range [2]string{m.Winner1ID, m.Winner2ID} {
			outcomes[id] = append(outcomes[id], true)
		}
		for _, id := range [2]string{m.Loser1ID, m.Loser2ID} {
			outcomes[id] = append(outcomes[id], false)
		}
	}

	entries := make([]LeaderboardEntry, 0, len(s.players))
	for _, id := range s.playerIDs() {
		stats := buildWinLossStats(id, outcomes[id])
		if opts.MinGames > 0 && stats.TotalGames < opts.MinGames {
			continue
		}

		p := s.Player(id)
		entries = append(entries, LeaderboardEntry{
			WinLossStats: stats,
			PlayerName:   p.Name,
			Nickname:     p.Nickname,
			AvatarEmoji:  p.AvatarEmoji,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.TotalGames != b.TotalGames {
			return a.TotalGames > b.TotalGames
		}
		return a.PlayerID < b.PlayerID
	})

	return entries
}
