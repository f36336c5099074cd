package util

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const ctxKeyLogger contextKey = "logger"

// LogFromContext returns the logger stored in ctx by the request logger
// middleware, falling back to the global logger.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKeyLogger).(*zerolog.Logger); ok {
		return l
	}

	l := log.Logger
	return &l
}

// WithLogger returns a derived context holding the given logger.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, l)
}

// LogLevelFromString parses level, defaulting to debug on unknown values.
func LogLevelFromString(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Error().Err(err).Str("level", level).Msg("Failed to parse log level, defaulting to debug")
		return zerolog.DebugLevel
	}

	return l
}
