package stats

import "testing"

func badgeCodes(badges []Badge) map[string]bool {
	codes := make(map[string]bool, len(badges))
	for _, b := range badges {
		codes[b.Code] = true
	}
	return codes
}

func TestEvaluateAchievements_ZeroRecordEarnsNothing(t *testing.T) {
	rules := DefaultRules(DefaultThresholds())

	badges := EvaluateAchievements(rules, WinLossStats{PlayerID: "alice"}, RelationshipStats{})
	if len(badges) != 0 {
		t.Errorf("EvaluateAchievements() = %v, want none for a zero record", badges)
	}
}

func TestEvaluateAchievements_IndependentRules(t *testing.T) {
	rules := DefaultRules(DefaultThresholds())
	stats := WinLossStats{
		PlayerID:   "alice",
		Wins:       30,
		Losses:     5,
		TotalGames: 35,
		WinRate:    30.0 / 35.0,
		Streak:     6,
	}
	rel := RelationshipStats{
		BestPartner: &PartnerStats{PartnerID: "ben", Wins: 12, Losses: 2},
	}

	codes := badgeCodes(EvaluateAchievements(rules, stats, rel))
	for _, want := range []string{"FIRST_WIN", "VETERAN", "ON_FIRE", "DOMINATOR", "DYNAMIC_DUO"} {
		if !codes[want] {
			t.Errorf("missing badge %s (got %v)", want, codes)
		}
	}
	if codes["ICE_COLD"] {
		t.Error("ICE_COLD awarded to a player on a winning streak")
	}
	if codes["REGULAR"] {
		t.Error("REGULAR awarded below the game threshold")
	}
}

func TestEvaluateAchievements_ColdStreak(t *testing.T) {
	rules := DefaultRules(DefaultThresholds())
	stats := WinLossStats{PlayerID: "dave", Wins: 1, Losses: 7, TotalGames: 8, WinRate: 0.125, Streak: -5}

	codes := badgeCodes(EvaluateAchievements(rules, stats, RelationshipStats{}))
	if !codes["ICE_COLD"] {
		t.Error("expected ICE_COLD at a five-loss skid")
	}
	if codes["ON_FIRE"] {
		t.Error("ON_FIRE awarded during a losing streak")
	}
}

func TestEvaluateAchievements_ThresholdsAreData(t *testing.T) {
	// Lowering a threshold changes who qualifies without touching any rule.
	loose := DefaultThresholds()
	loose.VeteranWins = 2

	stats := WinLossStats{PlayerID: "carol", Wins: 2, Losses: 1, TotalGames: 3, WinRate: 2.0 / 3.0, Streak: 1}

	strictCodes := badgeCodes(EvaluateAchievements(DefaultRules(DefaultThresholds()), stats, RelationshipStats{}))
	if strictCodes["VETERAN"] {
		t.Error("VETERAN awarded at 2 wins under the default threshold")
	}

	looseCodes := badgeCodes(EvaluateAchievements(DefaultRules(loose), stats, RelationshipStats{}))
	if !looseCodes["VETERAN"] {
		t.Error("VETERAN not awarded after lowering the threshold to 2")
	}
}

func TestEvaluateAchievements_TableOrderPreserved(t *testing.T) {
	rules := DefaultRules(DefaultThresholds())
	stats := WinLossStats{PlayerID: "alice", Wins: 60, Losses: 10, TotalGames: 70, WinRate: 6.0 / 7.0, Streak: 8}

	badges := EvaluateAchievements(rules, stats, RelationshipStats{})
	positions := make(map[string]int, len(badges))
	for i, b := range badges {
		positions[b.Code] = i
	}
	if positions["FIRST_WIN"] > positions["VETERAN"] || positions["VETERAN"] > positions["REGULAR"] {
		t.Errorf("badges out of table order: %v", badges)
	}
}
