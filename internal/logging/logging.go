package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spanapp/span-backend/internal/config"
)

// New builds the service logger from config. Non-production environments
// get the human-readable console writer.
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Server.Env == "production" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger.Level(level).With().Timestamp().Str("service", "span-backend").Logger()
}
