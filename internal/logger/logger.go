package logger

import (
	"os"

	"scoreboard-tracker/internal/config"

	"github.com/rs/zerolog"
)

// New builds the process logger at the configured level. Unknown level names
// fall back to info.
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)
}
