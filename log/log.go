// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin structured-logging layer over log/slog. The root
// handler discards everything until the embedding process installs one, so
// consensus packages can log freely without forcing output on library users.
package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Logger a leveled key-value logger bound to some context attrs.
type Logger struct {
	attrs []any
}

var rootHandler atomic.Value // slog.Handler

func init() {
	rootHandler.Store(slog.Handler(discardHandler{}))
}

// SetHandler installs the process-wide handler.
func SetHandler(h slog.Handler) {
	rootHandler.Store(h)
}

// WithContext creates a logger carrying the given context attrs,
// typically ("pkg", name).
func WithContext(kv ...any) Logger {
	return Logger{attrs: kv}
}

// New returns a child logger with additional context attrs.
func (l Logger) New(kv ...any) Logger {
	attrs := make([]any, 0, len(l.attrs)+len(kv))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, kv...)
	return Logger{attrs: attrs}
}

func (l Logger) log(level slog.Level, msg string, kv []any) {
	h := rootHandler.Load().(slog.Handler)
	logger := slog.New(h).With(l.attrs...)
	logger.Log(context.Background(), level, msg, kv...)
}

// Debug logs at debug level.
func (l Logger) Debug(msg string, kv ...any) { l.log(slog.LevelDebug, msg, kv) }

// Info logs at info level.
func (l Logger) Info(msg string, kv ...any) { l.log(slog.LevelInfo, msg, kv) }

// Warn logs at warn level.
func (l Logger) Warn(msg string, kv ...any) { l.log(slog.LevelWarn, msg, kv) }

// Error logs at error level.
func (l Logger) Error(msg string, kv ...any) { l.log(slog.LevelError, msg, kv) }

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return discardHandler{}
}

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }

func (h discardHandler) WithGroup(string) slog.Handler { return h }

func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
