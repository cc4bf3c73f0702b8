package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context, for example the
// caller id that the remote queue server stores on each request.
// It reports false when the context carries nothing to log.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator is the slog.Handler New installs when context
// extractors are registered.
// Before a record reaches the wrapped handler it is enriched with the
// attributes its context carries, so a queue call logged with
// log.WarnContext(ctx, ...) on the server side is tagged with the caller
// that issued it without the call site passing the id along.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewLogHandlerDecorator wraps next. Nil extractors are dropped; with none
// left, next is returned as is.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	var kept []ContextExtractor
	for _, ex := range extractors {
		if ex != nil {
			kept = append(kept, ex)
		}
	}
	if len(kept) == 0 {
		return next
	}
	return &LogHandlerDecorator{next: next, extractors: kept}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle appends the context attributes to rec and passes it on.
// Empty attributes, such as logger.CallerID("") returns, are skipped.
func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if attrs := h.contextAttrs(ctx); len(attrs) > 0 {
		rec = rec.Clone()
		rec.AddAttrs(attrs...)
	}
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) contextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok || attr.Equal(slog.Attr{}) {
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.next.WithAttrs(attrs))
}

func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return h.wrap(h.next.WithGroup(name))
}

// wrap keeps the extractors on a derived handler.
func (h *LogHandlerDecorator) wrap(next slog.Handler) *LogHandlerDecorator {
	return &LogHandlerDecorator{next: next, extractors: h.extractors}
}
