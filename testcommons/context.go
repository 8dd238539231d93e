package testcommons

import (
	"context"

	"github.com/pdfclown/lib-testcommons/testcommons/log"
)

type contextKey string

// loggerContextKey is the context key used to store the suite logger.
const loggerContextKey = contextKey("testcommons_logger")

// ContextWithLogger returns a child context carrying the given logger.
func ContextWithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// LoggerFromContext extracts the logger carried by ctx, falling back to a
// no-op logger so callers never need a nil check.
//
//nolint:ireturn
func LoggerFromContext(ctx context.Context) log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerContextKey).(log.Logger); ok && logger != nil {
			return logger
		}
	}

	return &log.NopLogger{}
}
