package contextx

import (
	"context"
	"fmt"
	"log/slog"

	"gifts_buyer/pkg/logx"
)

type contextKeyLogger struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger{}, logger)
}

func LoggerFromContext(ctx context.Context) (*slog.Logger, error) {
	logger, ok := ctx.Value(contextKeyLogger{}).(*slog.Logger)
	if !ok {
		return nil, fmt.Errorf("logger: %w", ErrNoValue)
	}

	return logger, nil
}

// LoggerFromContextOrDefault never returns nil: it falls back to slog.Default.
func LoggerFromContextOrDefault(ctx context.Context) *slog.Logger {
	logger, err := LoggerFromContext(ctx)
	if err != nil {
		return slog.Default()
	}

	return logger
}

// WithCycle attaches a trace id to the context and to the context logger.
func WithCycle(ctx context.Context, traceID TraceID) context.Context {
	ctx = WithTraceID(ctx, traceID)

	return WithLogger(ctx, LoggerFromContextOrDefault(ctx).With(logx.Stringer(logx.FieldTraceID, traceID)))
}
