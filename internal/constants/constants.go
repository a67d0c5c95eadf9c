package constants

import "time"

// Operation timeouts.
const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
)

// Connection pool tuning.
const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

// Session cookies.
const (
	SessionTokenTTL   = 24 * time.Hour
	SessionCookieName = "session"
)

// RecentMatchesLimit caps the match history embedded in a player's stats
// bundle.
const RecentMatchesLimit = 10
