package stats

import (
	"reflect"
	"testing"

	"scoreboard-tracker/internal/domain"
)

func TestLeaderboard_Ordering(t *testing.T) {
	players := makePlayers("alice", "ben", "carol", "dave", "erin", "frank")
	// alice+ben win twice against two different pairs, carol+dave split.
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
		makeMatch(2, [2]string{"alice", "ben"}, [2]string{"erin", "frank"}),
		makeMatch(3, [2]string{"carol", "dave"}, [2]string{"erin", "frank"}),
	}
	s := mustSnapshot(t, players, matches)

	entries := s.Leaderboard(LeaderboardOptions{})
	if len(entries) != 6 {
		t.Fatalf("Leaderboard() returned %d entries, want 6", len(entries))
	}

	// 100% alice/ben (2 games), then 50% carol/dave, then 0% erin/frank.
	wantOrder := []string{"alice", "ben", "carol", "dave", "erin", "frank"}
	for i, want := range wantOrder {
		if entries[i].PlayerID != want {
			t.Errorf("Leaderboard()[%d] = %s, want %s", i, entries[i].PlayerID, want)
		}
	}
}

func TestLeaderboard_VolumeBreaksRateTies(t *testing.T) {
	players := makePlayers("alice", "ben", "carol", "dave", "erin", "frank")
	// Everyone on the winning side only; alice+ben have twice the volume.
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
		makeMatch(2, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
	}
	s := mustSnapshot(t, players, matches)

	entries := s.Leaderboard(LeaderboardOptions{MinGames: 1})
	if len(entries) != 4 {
		t.Fatalf("Leaderboard(MinGames: 1) returned %d entries, want 4", len(entries))
	}
	if entries[0].PlayerID != "alice" || entries[1].PlayerID != "ben" {
		t.Errorf("Leaderboard() top = [%s %s], want [alice ben]", entries[0].PlayerID, entries[1].PlayerID)
	}
}

func TestLeaderboard_StrictTotalOrder(t *testing.T) {
	players := makePlayers("alice", "ben", "carol", "dave")
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
		makeMatch(2, [2]string{"carol", "dave"}, [2]string{"alice", "ben"}),
		makeMatch(3, [2]string{"alice", "carol"}, [2]string{"ben", "dave"}),
	}
	s := mustSnapshot(t, players, matches)

	entries := s.Leaderboard(LeaderboardOptions{})
	for i := 0; i < len(entries)-1; i++ {
		a, b := entries[i], entries[i+1]
		switch {
		case a.WinRate > b.WinRate:
		case a.WinRate == b.WinRate && a.TotalGames > b.TotalGames:
		case a.WinRate == b.WinRate && a.TotalGames == b.TotalGames && a.PlayerID < b.PlayerID:
		default:
			t.Errorf("entries %d and %d violate the order: %+v then %+v", i, i+1, a, b)
		}
	}
}

func TestLeaderboard_WinSumMatchesLog(t *testing.T) {
	// One participant (ghost) is missing from the directory; the invariant
	// must hold anyway.
	players := makePlayers("alice", "ben", "carol")
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "ghost"}),
		makeMatch(2, [2]string{"carol", "ghost"}, [2]string{"alice", "ben"}),
		makeMatch(3, [2]string{"alice", "ghost"}, [2]string{"ben", "carol"}),
	}
	s := mustSnapshot(t, players, matches)

	entries := s.Leaderboard(LeaderboardOptions{})
	wins, losses := 0, 0
	for _, e := range entries {
		wins += e.Wins
		losses += e.Losses
	}
	if wins != 2*len(matches) {
		t.Errorf("sum of wins = %d, want %d", wins, 2*len(matches))
	}
	if losses != 2*len(matches) {
		t.Errorf("sum of losses = %d, want %d", losses, 2*len(matches))
	}
}

func TestLeaderboard_UnknownPlayerFallsBackToID(t *testing.T) {
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "ghost"}),
	}
	s := mustSnapshot(t, makePlayers("alice", "ben", "carol"), matches)

	entries := s.Leaderboard(LeaderboardOptions{})
	var ghost *LeaderboardEntry
	for i := range entries {
		if entries[i].PlayerID == "ghost" {
			ghost = &entries[i]
		}
	}
	if ghost == nil {
		t.Fatal("Leaderboard() is missing the undirectoried participant")
	}
	if ghost.PlayerName != "ghost" {
		t.Errorf("ghost.PlayerName = %q, want the raw id", ghost.PlayerName)
	}
}

func TestLeaderboard_MinGamesFilter(t *testing.T) {
	players := makePlayers("alice", "ben", "carol", "dave", "zed")
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
	}
	s := mustSnapshot(t, players, matches)

	all := s.Leaderboard(LeaderboardOptions{})
	if len(all) != 5 {
		t.Errorf("Leaderboard() returned %d entries, want 5 including the idle player", len(all))
	}

	active := s.Leaderboard(LeaderboardOptions{MinGames: 1})
	if len(active) != 4 {
		t.Errorf("Leaderboard(MinGames: 1) returned %d entries, want 4", len(active))
	}
	for _, e := range active {
		if e.PlayerID == "zed" {
			t.Error("Leaderboard(MinGames: 1) still contains the idle player")
		}
	}
}

func TestDerivedValues_Idempotent(t *testing.T) {
	players := makePlayers("alice", "ben", "carol", "dave")
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
		makeMatch(2, [2]string{"carol", "dave"}, [2]string{"alice", "ben"}),
		makeMatch(3, [2]string{"alice", "carol"}, [2]string{"ben", "dave"}),
	}
	s := mustSnapshot(t, players, matches)

	if !reflect.DeepEqual(s.Leaderboard(LeaderboardOptions{}), s.Leaderboard(LeaderboardOptions{})) {
		t.Error("Leaderboard() differs between identical calls")
	}
	if !reflect.DeepEqual(s.Rivalries(), s.Rivalries()) {
		t.Error("Rivalries() differs between identical calls")
	}
	if !reflect.DeepEqual(s.Relationships("alice"), s.Relationships("alice")) {
		t.Error("Relationships() differs between identical calls")
	}
	if s.PlayerStats("alice") != s.PlayerStats("alice") {
		t.Error("PlayerStats() differs between identical calls")
	}
}
