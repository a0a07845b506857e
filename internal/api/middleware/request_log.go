package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// RequestLogger logs one structured line per completed request through chi's
// request logging middleware. Run it after TraceMiddleware so the line
// carries the trace ID.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&slogFormatter{base: base})
}

type slogFormatter struct {
	base *slog.Logger
}

func (f *slogFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	log := logger.FromContextOrDefault(r.Context(), f.base)
	if shared.GetTraceID(r.Context()) == "" {
		log = log.With(slog.String("request_id", chimw.GetReqID(r.Context())))
	}
	return &slogEntry{
		log: log.With(
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		),
	}
}

type slogEntry struct {
	log *slog.Logger
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	e.log.Log(context.Background(), level, "request completed",
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("elapsed", elapsed))
}

func (e *slogEntry) Panic(v interface{}, stack []byte) {
	e.log.Error("request panicked",
		slog.Any("panic", v),
		slog.String("stack", string(stack)))
}
