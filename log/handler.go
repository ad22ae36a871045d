package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type discardHandler struct{}

// DiscardHandler returns a handler that drops every record, the
// default until a caller opts into real output via SetDefault.
func DiscardHandler() slog.Handler { return &discardHandler{} }

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (h *discardHandler) WithGroup(_ string) slog.Handler               { return h }
func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return h }

type leveler struct{ minLevel slog.Level }

func (l *leveler) Level() slog.Level { return l.minLevel }

// JSONHandler returns a handler printing records as JSON, with level
// names rendered by replaceLevel.
func JSONHandler(wr io.Writer) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{ReplaceAttr: replaceLevel})
}

// TerminalHandler returns a handler printing "LEVEL msg key=val ..."
// lines sized for a human at a terminal, the evmrun CLI's default.
func TerminalHandler(wr io.Writer, minLevel slog.Level) slog.Handler {
	return &termHandler{wr: wr, minLevel: minLevel}
}

type termHandler struct {
	wr       io.Writer
	minLevel slog.Level
	attrs    []slog.Attr
}

func (h *termHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

func (h *termHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(LevelString(r.Level))
	for len(b.String()) < 5 {
		b.WriteByte(' ')
	}
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	b.WriteByte('\n')
	_, err := io.WriteString(h.wr, b.String())
	return err
}

func (h *termHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &termHandler{wr: h.wr, minLevel: h.minLevel, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *termHandler) WithGroup(_ string) slog.Handler { return h }

// replaceLevel renders this package's LevelTrace/LevelCrit with their
// names instead of slog's default numeric fallback.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lv, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelString(lv))
		}
	}
	return a
}
