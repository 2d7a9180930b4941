package middlewarex

import (
	"log/slog"
	"net/http"
	"time"

	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Logger attaches a request-scoped logger and logs each request at debug level.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()

		traceID, err := contextx.TraceIDFromContext(ctx)
		if err != nil {
			logger(ctx).Error("contextx.TraceIDFromContext", logx.Error(err))
		}

		log := logger(ctx).With(
			logx.Stringer(logx.FieldTraceID, traceID),
			logx.Stringer(logx.FieldURL, r.URL),
			slog.String(logx.FieldHTTPMethod, r.Method),
			slog.String(logx.FieldIP, r.RemoteAddr),
		)

		next.ServeHTTP(w, r.WithContext(contextx.WithLogger(ctx, log)))

		log.Debug("http request served", slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()))
	})
}

// Wrap applies TraceID, Logger and Recovery, outermost first.
func Wrap(next http.Handler) http.Handler {
	return TraceID(Logger(Recovery(next)))
}
