package stats

import "sort"

// RivalryEntry is the head-to-head record of an unordered player pair that
// has met across the net at least once. Player1 is always the lower id.
type RivalryEntry struct {
	Player1ID   string `json:"player1_id"`
	Player1Name string `json:"player1_name"`
	Player2ID   string `json:"player2_id"`
	Player2Name string `json:"player2_name"`
	Player1Wins int    `json:"player1_wins"`
	Player2Wins int    `json:"player2_wins"`
}

type rivalryKey struct {
	low, high string
}

// Rivalries builds the full pairwise opposition table. Each match updates up
// to four pairs: both winners against both losers. Pairs who have only ever
// been teammates do not appear.
//
// The result is the raw relation, emitted in (player1_id, player2_id) order
// so identical snapshots yield identical slices. Presentation ordering, such
// as most-played-first, belongs to the caller.
func (s *Snapshot) Rivalries() []RivalryEntry {
	table := make(map[rivalryKey]*pairRecord) // wins = low id's wins over high

	for _, m := range s.matches {
		for _, winner := range [2]string{m.Winner1ID, m.Winner2ID} {
			for _, loser := range [2]string{m.Loser1ID, m.Loser2ID} {
				key := rivalryKey{low: winner, high: loser}
				lowWon := true
				if key.high < key.low {
					key.low, key.high = key.high, key.low
					lowWon = false
				}

				record := table[key]
				if record == nil {
					record = &pairRecord{}
					table[key] = record
				}
				if lowWon {
					record.wins++
				} else {
					record.losses++
				}
			}
		}
	}

	entries := make([]RivalryEntry, 0, len(table))
	for key, record := range table {
		entries = append(entries, RivalryEntry{
			Player1ID:   key.low,
			Player1Name: s.Player(key.low).Name,
			Player2ID:   key.high,
			Player2Name: s.Player(key.high).Name,
			Player1Wins: record.wins,
			Player2Wins: record.losses,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Player1ID != entries[j].Player1ID {
			return entries[i].Player1ID < entries[j].Player1ID
		}
		return entries[i].Player2ID < entries[j].Player2ID
	})

	return entries
}
