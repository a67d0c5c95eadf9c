package stats

// Badge is an achievement a player currently holds. Badges are derived fresh
// on every query and never stored.
type Badge struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Thresholds are the tunable numbers behind the default rule table. They are
// data: changing a threshold must never require touching evaluation code.
type Thresholds struct {
	VeteranWins       int
	HotStreakLength   int
	ColdStreakLength  int
	DominatorWinRate  float64
	DominatorMinGames int
	DynamicDuoWins    int
	RegularGames      int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		VeteranWins:       25,
		HotStreakLength:   5,
		ColdStreakLength:  5,
		DominatorWinRate:  0.8,
		DominatorMinGames: 5,
		DynamicDuoWins:    10,
		RegularGames:      50,
	}
}

// Rule pairs a badge with its predicate. Rules are independent: a player
// holds every badge whose predicate passes, in table order.
type Rule struct {
	Badge Badge
	Holds func(stats WinLossStats, rel RelationshipStats) bool
}

// DefaultRules builds the standard badge table at the given thresholds.
// New badges are new table entries, not new branches.
func DefaultRules(t Thresholds) []Rule {
	return []Rule{
		{
			Badge: Badge{Code: "FIRST_WIN", Name: "First Blood", Description: "Won a match", Icon: "🩸"},
			Holds: func(s WinLossStats, _ RelationshipStats) bool {
				return s.Wins >= 1
			},
		},
		{
			Badge: Badge{Code: "VETERAN", Name: "Veteran", Description: "Piled up career wins", Icon: "🏆"},
			Holds: func(s WinLossStats, _ RelationshipStats) bool {
				return s.Wins >= t.VeteranWins
			},
		},
		{
			Badge: Badge{Code: "ON_FIRE", Name: "On Fire", Description: "Long winning streak", Icon: "🔥"},
			Holds: func(s WinLossStats, _ RelationshipStats) bool {
				return s.Streak >= t.HotStreakLength
			},
		},
		{
			Badge: Badge{Code: "ICE_COLD", Name: "Ice Cold", Description: "Long losing streak", Icon: "🥶"},
			Holds: func(s WinLossStats, _ RelationshipStats) bool {
				return s.Streak <= -t.ColdStreakLength
			},
		},
		{
			Badge: Badge{Code: "DOMINATOR", Name: "Dominator", Description: "Crushing win rate over real volume", Icon: "😈"},
			Holds: func(s WinLossStats, _ RelationshipStats) bool {
				return s.TotalGames >= t.DominatorMinGames && s.WinRate >= t.DominatorWinRate
			},
		},
		{
			Badge: Badge{Code: "DYNAMIC_DUO", Name: "Dynamic Duo", Description: "Many wins with the same partner", Icon: "🤝"},
			Holds: func(_ WinLossStats, rel RelationshipStats) bool {
				return rel.BestPartner != nil && rel.BestPartner.Wins >= t.DynamicDuoWins
			},
		},
		{
			Badge: Badge{Code: "REGULAR", Name: "Court Regular", Description: "Always on the court", Icon: "🏓"},
			Holds: func(s WinLossStats, _ RelationshipStats) bool {
				return s.TotalGames >= t.RegularGames
			},
		},
	}
}

// EvaluateAchievements returns the badges whose predicates hold, in rule
// table order.
func EvaluateAchievements(rules []Rule, stats WinLossStats, rel RelationshipStats) []Badge {
	badges := make([]Badge, 0, len(rules))
	for _, rule := range rules {
		if rule.Holds(stats, rel) {
			badges = append(badges, rule.Badge)
		}
	}
	return badges
}
