package logging

import (
	"context"
	"log/slog"

	"logveil-hq/logveil/pkg/redact"
)

// RedactHandler is an slog.Handler decorator that applies the loaded
// redaction policy to every record before delegating to the wrapped
// handler. The message and all string attribute values are redacted,
// including values inside groups; non-string values pass through.
type RedactHandler struct {
	inner    slog.Handler
	redactor *redact.Redactor
}

// NewRedactHandler wraps inner with policy-driven redaction.
func NewRedactHandler(inner slog.Handler, redactor *redact.Redactor) *RedactHandler {
	return &RedactHandler{inner: inner, redactor: redactor}
}

// Enabled reports whether the wrapped handler handles records at the
// given level.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle redacts the record's message and string attributes, then
// delegates to the wrapped handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, h.redactor.Redact(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

// WithAttrs redacts the added attributes once, at attachment time, and
// returns a handler wrapping the result.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.redactAttr(a)
	}
	return &RedactHandler{inner: h.inner.WithAttrs(out), redactor: h.redactor}
}

// WithGroup returns a handler with the group opened on the wrapped
// handler.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{inner: h.inner.WithGroup(name), redactor: h.redactor}
}

// redactAttr returns a with string values redacted, descending into
// groups.
func (h *RedactHandler) redactAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(h.redactor.Redact(a.Value.String()))
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = h.redactAttr(ga)
		}
		a.Value = slog.GroupValue(out...)
	}
	return a
}
