// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a *slog.Logger from functional options; the attribute helpers give
// every component the same key names for common data:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "shiftclient"),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	)
//
//	log.Info("realtime connection open",
//		logger.Component("realtime"),
//		logger.ConnectionID(id),
//		logger.URL(addr),
//	)
//
// Helpers return an empty slog.Attr for nil or empty values, so they can be
// passed unconditionally:
//
//	log.Warn("login failed", logger.Error(err), logger.StatusCode(code))
//
// Use Discard in tests or wherever logging must be silenced.
package logger
