package domain

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const DefaultAvatar = "🏓"

// maxTimestampMs is the year 9999 in unix milliseconds, the ceiling for the
// reverse-timestamp match ID scheme.
const maxTimestampMs = 253_402_300_799_999

type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	AvatarEmoji string `json:"avatar_emoji"`
}

// MatchScore is the optional point score of a finished match. Both numbers
// are always present together; a match either has a full score or none.
type MatchScore struct {
	Winner int `json:"winner_score"`
	Loser  int `json:"loser_score"`
}

type Match struct {
	ID         string      `json:"id"`
	Winner1ID  string      `json:"winner1_id"`
	Winner2ID  string      `json:"winner2_id"`
	Loser1ID   string      `json:"loser1_id"`
	Loser2ID   string      `json:"loser2_id"`
	Score      *MatchScore `json:"score,omitempty"`
	Comment    string      `json:"comment"`
	RecordedBy string      `json:"recorded_by"`
	PlayedAt   time.Time   `json:"played_at"`
}

// NewMatchID builds a match ID of the form
// "{reverse_timestamp:020d}_{nanoid}". Reversing the timestamp makes
// ascending lexicographic ID order equal newest-first play order, and the
// nanoid suffix keeps IDs unique within the same millisecond.
func NewMatchID(playedAt time.Time) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}
	reverse := maxTimestampMs - playedAt.UnixMilli()
	return fmt.Sprintf("%020d_%s", reverse, suffix), nil
}
