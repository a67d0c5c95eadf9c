package stats

// WinLossStats is a player's aggregate record over the snapshot.
//
// Streak is signed: +n for n consecutive wins ending at the player's most
// recent match, -n for n consecutive losses, 0 with no games. WinRate is a
// fraction in [0,1] and is 0 (never NaN) for a player without games.
type WinLossStats struct {
	PlayerID   string  `json:"player_id"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	TotalGames int     `json:"total_games"`
	WinRate    float64 `json:"win_rate"`
	Streak     int     `json:"streak"`
}

// PlayerStats aggregates wins, losses, win rate and the current streak for
// one player. A player with no recorded games gets the zero record.
func (s *Snapshot) PlayerStats(playerID string) WinLossStats {
	var outcomes []bool // newest-first, true = win
	for _, m := range s.matches {
		switch {
		case m.Winner1ID == playerID || m.Winner2ID == playerID:
			outcomes = append(outcomes, true)
		case m.Loser1ID == playerID || m.Loser2ID == playerID:
			outcomes = append(outcomes, false)
		}
	}
	return buildWinLossStats(playerID, outcomes)
}

func buildWinLossStats(playerID string, outcomes []bool) WinLossStats {
	stats := WinLossStats{PlayerID: playerID}
	for _, won := range outcomes {
		if won {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}
	stats.TotalGames = stats.Wins + stats.Losses
	if stats.TotalGames > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalGames)
	}
	stats.Streak = streak(outcomes)
	return stats
}

// streak computes the signed run length of identical outcomes from a
// newest-first outcome list: [W W L ...] is +2, [L L L] is -3.
func streak(outcomes []bool) int {
	if len(outcomes) == 0 {
		return 0
	}

	latest := outcomes[0]
	count := 0
	for _, won := range outcomes {
		if won != latest {
			break
		}
		count++
	}

	if latest {
		return count
	}
	return -count
}
