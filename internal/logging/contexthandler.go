package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns attributes carried by ctx.
type ContextProvider func(ctx context.Context) []slog.Attr

// ContextHandler wraps another handler and adds the attributes its provider
// finds in each record's context.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
}

// NewContextHandler creates a handler that adds context attributes to each record.
func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{
		inner:    inner,
		provider: provider,
	}
}

// Enabled delegates to the inner handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle adds the context attributes and delegates to the inner handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider(ctx)...)
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler with the given attributes.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		inner:    h.inner.WithAttrs(attrs),
		provider: h.provider,
	}
}

// WithGroup returns a new ContextHandler with the given group.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{
		inner:    h.inner.WithGroup(name),
		provider: h.provider,
	}
}

type unitFileKey struct{}

// WithUnitFile marks ctx as belonging to the render of one unit file.
func WithUnitFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, unitFileKey{}, path)
}

// UnitFileAttrs is the ContextProvider for unit files set by WithUnitFile.
func UnitFileAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	path, ok := ctx.Value(unitFileKey{}).(string)
	if !ok || path == "" {
		return nil
	}
	return []slog.Attr{slog.String("unit_file", path)}
}
