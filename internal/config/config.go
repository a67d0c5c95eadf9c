package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath     string
	ServerPort string
	LogLevel   string

	// AppURL is the public-facing base URL, used to build OIDC redirect URIs.
	AppURL        string
	SessionSecret string

	EntraTenantID     string
	EntraClientID     string
	EntraClientSecret string

	AllowedOrigins []string

	// Summary view knobs. Kept configurable so the office can tune how much
	// ridicule the standings page dishes out.
	MinGamesForWorstRate  int
	LosingStreakThreshold int
}

// Load reads .env when present, then the environment. It fails fast on the
// secrets the server cannot run without.
func Load() (*Config, error) {
	// Missing .env is fine; deployments set real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:                getEnv("DB_PATH", "scoreboard.db"),
		ServerPort:            getEnv("SERVER_PORT", "3000"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		AppURL:                getEnv("APP_URL", "http://localhost:3000"),
		SessionSecret:         getEnv("SESSION_SECRET", ""),
		EntraTenantID:         getEnv("ENTRA_TENANT_ID", ""),
		EntraClientID:         getEnv("ENTRA_CLIENT_ID", ""),
		EntraClientSecret:     getEnv("ENTRA_CLIENT_SECRET", ""),
		AllowedOrigins:        splitList(getEnv("ALLOWED_ORIGINS", "")),
		MinGamesForWorstRate:  getEnvInt("MIN_GAMES_FOR_WORST_RATE", 5),
		LosingStreakThreshold: getEnvInt("LOSING_STREAK_THRESHOLD", 3),
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.EntraTenantID == "" || cfg.EntraClientID == "" || cfg.EntraClientSecret == "" {
		return nil, fmt.Errorf("ENTRA_TENANT_ID, ENTRA_CLIENT_ID and ENTRA_CLIENT_SECRET are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
