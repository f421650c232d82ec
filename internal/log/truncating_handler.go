package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the attribute value length cap applied when no
// explicit limit is configured. Long enough for any file path or error
// chain, short enough that a dumped spreadsheet row cannot flood a log
// line.
const DefaultMaxValueLen = 256

// truncationMarker is appended to values that were cut.
const truncationMarker = "...(truncated)"

// TruncatingHandler wraps an slog.Handler and caps the rendered length
// of attribute values. Values longer than the limit are cut at a rune
// boundary and suffixed with a truncation marker before being passed to
// the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components keep accepting a plain *slog.Logger
type TruncatingHandler struct {
	// handler is the underlying slog handler that receives capped records.
	handler slog.Handler

	// maxValueLen is the maximum rendered length of one attribute value.
	maxValueLen int
}

// NewTruncatingHandler creates a TruncatingHandler wrapping the given
// handler with the default value length cap. If handler is nil, the
// returned TruncatingHandler uses slog.Default().Handler().
func NewTruncatingHandler(handler slog.Handler) *TruncatingHandler {
	return NewTruncatingHandlerWithLimit(handler, DefaultMaxValueLen)
}

// NewTruncatingHandlerWithLimit creates a TruncatingHandler with an
// explicit value length cap. A non-positive limit falls back to the
// default.
func NewTruncatingHandlerWithLimit(handler slog.Handler, maxValueLen int) *TruncatingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxValueLen <= 0 {
		maxValueLen = DefaultMaxValueLen
	}
	return &TruncatingHandler{handler: handler, maxValueLen: maxValueLen}
}

// Enabled reports whether the handler handles records at the given
// level. It delegates to the underlying handler.
func (h *TruncatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle caps the record's attribute values and passes it to the
// underlying handler.
func (h *TruncatingHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attribute values are capped before being added.
func (h *TruncatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	capped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		capped[i] = h.truncateAttr(a)
	}
	return &TruncatingHandler{handler: h.handler.WithAttrs(capped), maxValueLen: h.maxValueLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncatingHandler) WithGroup(name string) slog.Handler {
	return &TruncatingHandler{handler: h.handler.WithGroup(name), maxValueLen: h.maxValueLen}
}

// truncateAttr caps a single attribute value, recursively handling
// groups. Non-string kinds with short renderings (numbers, bools,
// times) pass through untouched; anything whose rendering exceeds the
// cap is replaced with a truncated string.
func (h *TruncatingHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		capped := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			capped[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(capped...)}
	}

	var rendered string
	switch a.Value.Kind() {
	case slog.KindString:
		rendered = a.Value.String()
	case slog.KindAny:
		rendered = fmt.Sprintf("%v", a.Value.Any())
	default:
		return a
	}

	if len(rendered) <= h.maxValueLen {
		return a
	}
	return slog.String(a.Key, truncate(rendered, h.maxValueLen))
}

// truncate cuts s to at most n bytes at a rune boundary and appends the
// truncation marker.
func truncate(s string, n int) string {
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationMarker
}

// NewLogger creates a *slog.Logger with truncating text output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Info
//
// The returned logger can be used with slog.SetDefault() or passed to
// components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewTruncatingHandler(slog.NewTextHandler(w, opts)))
}

// NewJSONLogger creates a *slog.Logger with truncating JSON output.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewTruncatingHandler(slog.NewJSONHandler(w, opts)))
}
