// Package stdlogger adapts the global zerolog logger to printf style logger
// interfaces, such as the gorm logger writer.
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger implements printf style logging on top of zerolog.
type Logger struct {
	logger zerolog.Logger
}

// New returns a Logger bound to the current global zerolog logger.
func New() *Logger {
	return &Logger{logger: log.Logger.With().Str("component", "stdlogger").Logger()}
}

// Printf logs at warn level. Printf based callers only print noteworthy events.
func (l *Logger) Printf(format string, v ...any) {
	l.logger.Warn().Msgf(format, v...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...any) {
	l.logger.Info().Msgf(format, v...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, v ...any) {
	l.logger.Warn().Msgf(format, v...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(format, v...)
}
