package stats

import "fmt"

// Highlight is one call-out on the standings summary, good-natured shame
// included.
type Highlight struct {
	Code       string `json:"code"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Text       string `json:"text"`
}

// SummaryOptions are the caller-supplied knobs for the summary table.
// MinGamesForWorstRate keeps the worst-rate call-out fair by ignoring
// players below a game count; LosingStreakThreshold sets how long a skid
// must get before it is worth mentioning.
type SummaryOptions struct {
	MinGamesForWorstRate  int
	LosingStreakThreshold int
}

type summaryRule struct {
	code string
	pick func(entries []LeaderboardEntry, opts SummaryOptions) (LeaderboardEntry, string, bool)
}

// The summary is the same shape as the badge table: an ordered list of
// (predicate, descriptor) pairs, each contributing at most one highlight.
var summaryRules = []summaryRule{
	{
		code: "top_dog",
		pick: func(entries []LeaderboardEntry, _ SummaryOptions) (LeaderboardEntry, string, bool) {
			for _, e := range entries {
				if e.TotalGames > 0 {
					return e, fmt.Sprintf("%s leads the board at %.0f%%", e.PlayerName, e.WinRate*100), true
				}
			}
			return LeaderboardEntry{}, "", false
		},
	},
	{
		code: "most_active",
		pick: func(entries []LeaderboardEntry, _ SummaryOptions) (LeaderboardEntry, string, bool) {
			var best LeaderboardEntry
			found := false
			for _, e := range entries {
				if e.TotalGames > best.TotalGames {
					best, found = e, true
				}
			}
			if !found {
				return LeaderboardEntry{}, "", false
			}
			return best, fmt.Sprintf("%s has played %d games, more than anyone else", best.PlayerName, best.TotalGames), true
		},
	},
	{
		code: "worst_rate",
		pick: func(entries []LeaderboardEntry, opts SummaryOptions) (LeaderboardEntry, string, bool) {
			var worst LeaderboardEntry
			found := false
			for _, e := range entries {
				if e.TotalGames < opts.MinGamesForWorstRate {
					continue
				}
				if !found || e.WinRate < worst.WinRate {
					worst, found = e, true
				}
			}
			if !found {
				return LeaderboardEntry{}, "", false
			}
			return worst, fmt.Sprintf("%s props up the table at %.0f%%", worst.PlayerName, worst.WinRate*100), true
		},
	},
	{
		code: "cold_streak",
		pick: func(entries []LeaderboardEntry, opts SummaryOptions) (LeaderboardEntry, string, bool) {
			var coldest LeaderboardEntry
			found := false
			for _, e := range entries {
				if e.Streak > -opts.LosingStreakThreshold {
					continue
				}
				if !found || e.Streak < coldest.Streak {
					coldest, found = e, true
				}
			}
			if !found {
				return LeaderboardEntry{}, "", false
			}
			return coldest, fmt.Sprintf("%s has dropped %d in a row", coldest.PlayerName, -coldest.Streak), true
		},
	},
}

// BuildSummary evaluates the highlight table over ranked standings. Entries
// must already be in leaderboard order; ties beyond that order are resolved
// by it, keeping the summary as deterministic as the board itself.
func BuildSummary(entries []LeaderboardEntry, opts SummaryOptions) []Highlight {
	highlights := make([]Highlight, 0, len(summaryRules))
	for _, rule := range summaryRules {
		entry, text, ok := rule.pick(entries, opts)
		if !ok {
			continue
		}
		highlights = append(highlights, Highlight{
			Code:       rule.code,
			PlayerID:   entry.PlayerID,
			PlayerName: entry.PlayerName,
			Text:       text,
		})
	}
	return highlights
}
