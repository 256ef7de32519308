package lineproc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/katalvlaran/packer/selector"
)

// NewLogger returns a structured logger writing to w (stderr when nil),
// JSON-formatted when json is true, text otherwise.
func NewLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// NoopLogger discards everything.
func NoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(strings.TrimSpace(s)))

	return lvl, err
}

// Code is the error class used in log records; it is decoupled from exit codes.
type Code string

const (
	CodeUnknown  Code = "unknown"
	CodeCapacity Code = "capacity"
	CodeItem     Code = "item"
	CodeLimit    Code = "limit"
	CodeIO       Code = "io"
	CodeCancel   Code = "cancel"
)

// Classify maps err onto a Code using sentinels only.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, selector.ErrCanceled):
		return CodeCancel
	case errors.Is(err, ErrMalformedCapacity):
		return CodeCapacity
	case errors.Is(err, ErrMalformedItem):
		return CodeItem
	case errors.Is(err, ErrLimitExceeded):
		return CodeLimit
	case errors.Is(err, ErrInput):
		return CodeIO
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}

	return CodeUnknown
}

// LogLine records the outcome of one line: debug on success, warn on a
// skipped line, error otherwise.
func LogLine(ctx context.Context, l *slog.Logger, line int, res selector.Result, err error) {
	switch {
	case err == nil:
		l.DebugContext(ctx, "line solved",
			"line", line,
			"chosen", len(res.Items),
			"cost", res.Cost,
			"weight", res.Weight,
			"nodes", res.Nodes,
		)
	case errors.Is(err, ErrMalformedCapacity):
		l.WarnContext(ctx, "line skipped",
			"line", line,
			"code", string(Classify(err)),
			"error", err,
		)
	default:
		l.ErrorContext(ctx, "line failed",
			"line", line,
			"code", string(Classify(err)),
			"error", err,
		)
	}
}

// LogRun records the run summary.
func LogRun(ctx context.Context, l *slog.Logger, st Stats, start time.Time, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"lines", st.Lines,
			"code", string(Classify(err)),
			"dur_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run finished",
		"lines", st.Lines,
		"solved", st.Solved,
		"empty", st.Empty,
		"skipped", st.Skipped,
		"dur_ms", time.Since(start).Milliseconds(),
	)
}
