// Package log configures safegen's slog logger and the write log that records
// every generated file.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
)

// LevelTrace defines a custom slog level below Debug for very verbose output.
const LevelTrace slog.Level = -8

// levelNames maps the --log.level values to slog levels.
var levelNames = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a level name to its slog level, ignoring case.
// Unknown names mean info.
func ParseLevel(s string) slog.Level {
	if l, ok := levelNames[strings.ToLower(s)]; ok {
		return l
	}
	return slog.LevelInfo
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(f, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanout) derive(fn func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}

// band passes records with lo <= level < hi to h.
type band struct {
	lo, hi slog.Level
	h      slog.Handler
}

func below(hi slog.Level, h slog.Handler) band {
	return band{lo: math.MinInt, hi: hi, h: h}
}

func atLeast(lo slog.Level, h slog.Handler) band {
	return band{lo: lo, hi: math.MaxInt, h: h}
}

func (b band) contains(l slog.Level) bool { return l >= b.lo && l < b.hi }

func (b band) Enabled(ctx context.Context, level slog.Level) bool {
	return b.contains(level) && b.h.Enabled(ctx, level)
}

func (b band) Handle(ctx context.Context, r slog.Record) error {
	if !b.contains(r.Level) {
		return nil
	}
	return b.h.Handle(ctx, r)
}

func (b band) WithAttrs(attrs []slog.Attr) slog.Handler {
	return band{lo: b.lo, hi: b.hi, h: b.h.WithAttrs(attrs)}
}

func (b band) WithGroup(name string) slog.Handler {
	return band{lo: b.lo, hi: b.hi, h: b.h.WithGroup(name)}
}

// Format selects the console handler: "text", "json", or "auto"
// (text on a terminal, JSON otherwise).
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// resolve picks a concrete format for w.
func (f Format) resolve(w *os.File) (Format, error) {
	switch f {
	case FormatText, FormatJSON:
		return f, nil
	case FormatAuto, "":
		if isTerminal(w) {
			return FormatText, nil
		}
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q", string(f))
	}
}

var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func newHandler(format Format, w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func levelOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l <= LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
}

// SetupLogger builds a slog.Logger. Without a log file, errors go to stderr
// and everything else to stdout. With one, the console gets every record on
// stderr and the file gets a text copy.
func SetupLogger(logLevel, logFile string, format Format) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	if logFile == "" {
		console, err := format.resolve(os.Stdout)
		if err != nil {
			return nil, nil, err
		}
		return slog.New(fanout{
			below(slog.LevelError, newHandler(console, os.Stdout, levelOptions(level))),
			atLeast(slog.LevelError, newHandler(console, os.Stderr, levelOptions(slog.LevelError))),
		}), nil, nil
	}

	console, err := format.resolve(os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(fanout{
		newHandler(console, os.Stderr, levelOptions(level)),
		slog.NewTextHandler(f, levelOptions(level)),
	}), []io.Closer{f}, nil
}
