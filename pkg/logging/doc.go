// Package logging provides structured logging configuration for tickws.
//
// The package wraps log/slog so that every component logs consistently.
// Components accept a *slog.Logger in their constructor; pass logging.Nop()
// when logging is not wanted.
//
// Usage:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	logger.Info("listening", "addr", addr)
//
// Level and format strings from flags or config files are parsed with
// ParseLevel and ParseFormat. MultiHandler fans a record out to several
// handlers, for example stderr plus a log file.
package logging
