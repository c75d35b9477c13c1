package db

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// badgerLogger routes badger's internal logging to zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{
		logger: log.With().Str("component", "badger").Logger(),
	}
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), args...)
}
