package start2d

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// silentHandler drops every record. Reporting every level as disabled
// keeps attribute construction out of hot paths such as pointer moves.
type silentHandler struct{}

func (silentHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (silentHandler) Handle(context.Context, slog.Record) error { return nil }
func (silentHandler) WithAttrs([]slog.Attr) slog.Handler        { return silentHandler{} }
func (silentHandler) WithGroup(string) slog.Handler             { return silentHandler{} }

var silent = slog.New(silentHandler{})

// current is read by pointer handlers on the event loop and by wallpaper
// loads on their own goroutines.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes start2d diagnostics to l. The same logger is handed to
// gg, so canvas and drawing-surface messages share one destination.
// A nil l silences both again, which is also the initial state.
//
// Messages by level:
//   - [slog.LevelDebug]: geometry computed, viewport laid out
//   - [slog.LevelInfo]: canvas created or resized, PNG exported
//   - [slog.LevelWarn]: unknown paper size or wallpaper replaced by a fallback
//   - [slog.LevelError]: export or reload failed
//
// The command line tool enables everything with -v:
//
//	start2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
	gg.SetLogger(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}
