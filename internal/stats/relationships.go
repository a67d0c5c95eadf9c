package stats

// PartnerStats is a player's record alongside one teammate.
type PartnerStats struct {
	PartnerID   string `json:"partner_id"`
	PartnerName string `json:"partner_name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

// NemesisStats is a player's record against one opponent.
type NemesisStats struct {
	OpponentID    string `json:"opponent_id"`
	OpponentName  string `json:"opponent_name"`
	WinsAgainst   int    `json:"wins_against"`
	LossesAgainst int    `json:"losses_against"`
}

// RelationshipStats carries a player's standout relations. BestPartner is
// absent when the player has no games; Nemesis is absent when the player has
// no losses.
type RelationshipStats struct {
	BestPartner *PartnerStats `json:"best_partner"`
	Nemesis     *NemesisStats `json:"nemesis"`
}

type pairRecord struct {
	wins   int
	losses int
}

// Relationships derives a player's best partner and nemesis.
//
// Best partner: the teammate with the most joint wins; ties go to the higher
// joint game count, then the lower partner id. Nemesis: the opponent with
// the most wins over the player; ties go to the worse (losses minus wins)
// margin, then the lower opponent id.
func (s *Snapshot) Relationships(playerID string) RelationshipStats {
	partners := make(map[string]*pairRecord)
	opponents := make(map[string]*pairRecord) // wins = beaten them, losses = lost to them
	losses := 0

	for _, m := range s.matches {
		won := m.Winner1ID == playerID || m.Winner2ID == playerID
		lost := m.Loser1ID == playerID || m.Loser2ID == playerID
		if !won && !lost {
			continue
		}

		var teammate string
		var opposing [2]string
		if won {
			teammate = m.Winner1ID
			if teammate == playerID {
				teammate = m.Winner2ID
			}
			opposing = [2]string{m.Loser1ID, m.Loser2ID}
		} else {
			losses++
			teammate = m.Loser1ID
			if teammate == playerID {
				teammate = m.Loser2ID
			}
			opposing = [2]string{m.Winner1ID, m.Winner2ID}
		}

		record := partners[teammate]
		if record == nil {
			record = &pairRecord{}
			partners[teammate] = record
		}
		for _, opp := range opposing {
			if opponents[opp] == nil {
				opponents[opp] = &pairRecord{}
			}
		}

		if won {
			record.wins++
			for _, opp := range opposing {
				opponents[opp].wins++
			}
		} else {
			record.losses++
			for _, opp := range opposing {
				opponents[opp].losses++
			}
		}
	}

	return RelationshipStats{
		BestPartner: s.bestPartner(partners),
		Nemesis:     s.nemesis(opponents, losses),
	}
}

func (s *Snapshot) bestPartner(partners map[string]*pairRecord) *PartnerStats {
	var bestID string
	var best *pairRecord
	for id, record := range partners {
		if best == nil || betterPartner(id, record, bestID, best) {
			bestID, best = id, record
		}
	}
	if best == nil {
		return nil
	}
	return &PartnerStats{
		PartnerID:   bestID,
		PartnerName: s.Player(bestID).Name,
		Wins:        best.wins,
		Losses:      best.losses,
	}
}

func betterPartner(id string, r *pairRecord, bestID string, best *pairRecord) bool {
	if r.wins != best.wins {
		return r.wins > best.wins
	}
	if total, bestTotal := r.wins+r.losses, best.wins+best.losses; total != bestTotal {
		return total > bestTotal
	}
	return id < bestID
}

func (s *Snapshot) nemesis(opponents map[string]*pairRecord, losses int) *NemesisStats {
	if losses == 0 {
		return nil
	}

	var worstID string
	var worst *pairRecord
	for id, record := range opponents {
		if worst == nil || worseOpponent(id, record, worstID, worst) {
			worstID, worst = id, record
		}
	}
	return &NemesisStats{
		OpponentID:    worstID,
		OpponentName:  s.Player(worstID).Name,
		WinsAgainst:   worst.wins,
		LossesAgainst: worst.losses,
	}
}

func worseOpponent(id string, r *pairRecord, worstID string, worst *pairRecord) bool {
	if r.losses != worst.losses {
		return r.losses > worst.losses
	}
	if margin, worstMargin := r.losses-r.wins, worst.losses-worst.wins; margin != worstMargin {
		return margin > worstMargin
	}
	return id < worstID
}
