// Package logger sets up the application's log/slog JSON logger and carries
// request-scoped loggers (enriched with trace ids by the HTTP middleware)
// through context.Context.
package logger
