package stats

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"scoreboard-tracker/internal/domain"
)

var testDay = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// makeMatch builds the nth match of a fixture, played one day after the
// previous one so chronological order follows call order.
func makeMatch(n int, winners [2]string, losers [2]string) domain.Match {
	return domain.Match{
		ID:        fmt.Sprintf("m%03d", n),
		Winner1ID: winners[0],
		Winner2ID: winners[1],
		Loser1ID:  losers[0],
		Loser2ID:  losers[1],
		PlayedAt:  testDay.AddDate(0, 0, n),
	}
}

func makePlayers(ids ...string) []domain.Player {
	players := make([]domain.Player, len(ids))
	for i, id := range ids {
		players[i] = domain.Player{ID: id, Name: "Player " + id, AvatarEmoji: domain.DefaultAvatar}
	}
	return players
}

func mustSnapshot(t *testing.T, players []domain.Player, matches []domain.Match) *Snapshot {
	t.Helper()
	s, err := NewSnapshot(players, matches)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return s
}

// ---- Snapshot validation ----

func TestNewSnapshot_RejectsDuplicatePlayer(t *testing.T) {
	m := makeMatch(1, [2]string{"alice", "ben"}, [2]string{"alice", "dave"})

	_, err := NewSnapshot(nil, []domain.Match{m})
	if !errors.Is(err, ErrInvalidMatch) {
		t.Fatalf("NewSnapshot() error = %v, want ErrInvalidMatch", err)
	}
}

func TestNewSnapshot_RejectsEmptyPlayerID(t *testing.T) {
	m := makeMatch(1, [2]string{"alice", ""}, [2]string{"carol", "dave"})

	_, err := NewSnapshot(nil, []domain.Match{m})
	if !errors.Is(err, ErrInvalidMatch) {
		t.Fatalf("NewSnapshot() error = %v, want ErrInvalidMatch", err)
	}
}

func TestNewSnapshot_DoesNotMutateInput(t *testing.T) {
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
		makeMatch(2, [2]string{"carol", "dave"}, [2]string{"alice", "ben"}),
	}

	mustSnapshot(t, nil, matches)

	if matches[0].ID != "m001" || matches[1].ID != "m002" {
		t.Errorf("NewSnapshot() reordered the caller's slice: [%s %s]", matches[0].ID, matches[1].ID)
	}
}

// ---- Per-player stats ----

func TestPlayerStats_ZeroGames(t *testing.T) {
	s := mustSnapshot(t, makePlayers("alice"), nil)

	got := s.PlayerStats("alice")
	if got.Wins != 0 || got.Losses != 0 || got.TotalGames != 0 {
		t.Errorf("PlayerStats() = %+v, want zero record", got)
	}
	if got.WinRate != 0 {
		t.Errorf("PlayerStats().WinRate = %v, want 0", got.WinRate)
	}
	if got.Streak != 0 {
		t.Errorf("PlayerStats().Streak = %v, want 0", got.Streak)
	}
}

func TestPlayerStats_Streaks(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []bool // chronological, true = alice's team wins
		want     int
	}{
		{name: "win then loss then two wins", outcomes: []bool{true, true, false, true}, want: 1},
		{name: "all losses", outcomes: []bool{false, false, false}, want: -3},
		{name: "all wins", outcomes: []bool{true, true, true, true}, want: 4},
		{name: "loss ends win run", outcomes: []bool{true, true, false}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var matches []domain.Match
			for i, won := range tt.outcomes {
				if won {
					matches = append(matches, makeMatch(i+1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}))
				} else {
					matches = append(matches, makeMatch(i+1, [2]string{"carol", "dave"}, [2]string{"alice", "ben"}))
				}
			}
			s := mustSnapshot(t, nil, matches)

			if got := s.PlayerStats("alice").Streak; got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlayerStats_StreakTimestampCollision(t *testing.T) {
	// Two matches at the same instant: the lower match id counts as the most
	// recent one, so the walk starts there.
	win := makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"})
	loss := makeMatch(2, [2]string{"carol", "dave"}, [2]string{"alice", "ben"})
	loss.PlayedAt = win.PlayedAt

	s := mustSnapshot(t, nil, []domain.Match{win, loss})

	// Order is [m001 win, m002 loss]; the run stops after one win.
	if got := s.PlayerStats("alice").Streak; got != 1 {
		t.Errorf("Streak = %d, want +1", got)
	}
}

func TestPlayerStats_WinRate(t *testing.T) {
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
		makeMatch(2, [2]string{"carol", "dave"}, [2]string{"alice", "ben"}),
		makeMatch(3, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
	}
	s := mustSnapshot(t, nil, matches)

	got := s.PlayerStats("alice")
	if got.Wins != 2 || got.Losses != 1 || got.TotalGames != 3 {
		t.Fatalf("PlayerStats() = %+v, want 2W 1L", got)
	}
	if math.Abs(got.WinRate-2.0/3.0) > 1e-9 {
		t.Errorf("WinRate = %v, want 2/3", got.WinRate)
	}
}

// ---- End-to-end fixture from the scoreboard's own history ----

func TestEndToEnd_ThreeMatchSeason(t *testing.T) {
	players := makePlayers("alice", "ben", "carol", "dave")
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
		makeMatch(2, [2]string{"carol", "dave"}, [2]string{"alice", "ben"}),
		makeMatch(3, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
	}
	matches[0].Score = &domain.MatchScore{Winner: 11, Loser: 5}
	matches[1].Score = &domain.MatchScore{Winner: 11, Loser: 9}
	matches[2].Score = &domain.MatchScore{Winner: 11, Loser: 3}

	s := mustSnapshot(t, players, matches)

	alice := s.PlayerStats("alice")
	if alice.Wins != 2 || alice.Losses != 1 {
		t.Errorf("alice = %+v, want 2W 1L", alice)
	}
	if math.Abs(alice.WinRate-2.0/3.0) > 1e-9 {
		t.Errorf("alice.WinRate = %v, want 2/3", alice.WinRate)
	}
	if alice.Streak != 1 {
		t.Errorf("alice.Streak = %d, want +1", alice.Streak)
	}

	rel := s.Relationships("alice")
	if rel.BestPartner == nil || rel.BestPartner.PartnerID != "ben" {
		t.Fatalf("alice.BestPartner = %+v, want ben", rel.BestPartner)
	}
	if rel.BestPartner.Wins != 2 || rel.BestPartner.Losses != 1 {
		t.Errorf("alice.BestPartner = %+v, want 2W 1L together", rel.BestPartner)
	}

	// Carol lost twice to alice and twice to ben; the tie falls to the lower id.
	carol := s.Relationships("carol")
	if carol.Nemesis == nil {
		t.Fatal("carol.Nemesis = nil, want alice")
	}
	if carol.Nemesis.OpponentID != "alice" {
		t.Errorf("carol.Nemesis = %s, want alice", carol.Nemesis.OpponentID)
	}
	if carol.Nemesis.LossesAgainst != 2 || carol.Nemesis.WinsAgainst != 1 {
		t.Errorf("carol.Nemesis = %+v, want 2 losses 1 win", carol.Nemesis)
	}
}

// ---- Recent matches projection ----

func TestMatchesFor_NewestFirstAndLimited(t *testing.T) {
	matches := []domain.Match{
		makeMatch(1, [2]string{"alice", "ben"}, [2]string{"carol", "dave"}),
		makeMatch(2, [2]string{"carol", "dave"}, [2]string{"erin", "frank"}),
		makeMatch(3, [2]string{"alice", "carol"}, [2]string{"ben", "dave"}),
		makeMatch(4, [2]string{"erin", "frank"}, [2]string{"alice", "ben"}),
	}
	s := mustSnapshot(t, nil, matches)

	got := s.MatchesFor("alice", 2)
	if len(got) != 2 {
		t.Fatalf("MatchesFor(alice, 2) returned %d matches, want 2", len(got))
	}
	if got[0].ID != "m004" || got[1].ID != "m003" {
		t.Errorf("MatchesFor(alice, 2) = [%s %s], want [m004 m003]", got[0].ID, got[1].ID)
	}

	all := s.MatchesFor("alice", 0)
	if len(all) != 3 {
		t.Errorf("MatchesFor(alice, 0) returned %d matches, want full history of 3", len(all))
	}

	if got := s.MatchesFor("erin", 10); len(got) != 2 {
		t.Errorf("MatchesFor(erin, 10) returned %d matches, want 2", len(got))
	}

	if got := s.MatchesFor("nobody", 10); len(got) != 0 {
		t.Errorf("MatchesFor(nobody, 10) returned %d matches, want 0", len(got))
	}
}
