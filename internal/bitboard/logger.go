// path: internal/bitboard/logger.go
package bitboard

import (
	"context"
	"log/slog"
	"sync/atomic"
)

const logPrefix = "bitboard: "

type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var current atomic.Pointer[slog.Logger]

func init() { SetLogger(nil) }

// SetLogger routes the package's diagnostics to l: values cropped at
// construction, operands whose value changed while being re-fit, and
// ignored shift magnitudes are reported at Warn, derived heights at Debug.
// A nil l silences the package again, which is also the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discard{})
	}
	current.Store(l)
}

// Logger returns the logger currently in use.
func Logger() *slog.Logger { return current.Load() }

func warn(msg string, args ...any) {
	current.Load().Warn(logPrefix+msg, args...)
}

func debug(msg string, args ...any) {
	current.Load().Debug(logPrefix+msg, args...)
}
