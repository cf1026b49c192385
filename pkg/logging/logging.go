// Package logging builds the slog loggers used across the SDK and lakectl.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Output formats understood by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to w. Text output goes through tint.
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ParseLevel maps debug/info/warn/error onto slog levels. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

type NoopHandler struct{}

func (h *NoopHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (h *NoopHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h *NoopHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return h }
func (h *NoopHandler) WithGroup(_ string) slog.Handler               { return h }

func NewNoop() *slog.Logger {
	return slog.New(&NoopHandler{})
}

// OrNoop returns l, or a noop logger when l is nil.
func OrNoop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return NewNoop()
	}
	return l
}
