package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextHandler_AddsUnitFile(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil), UnitFileAttrs))

	ctx := WithUnitFile(context.Background(), "units/corsair.yaml")
	logger.InfoContext(ctx, "Generated readout")

	assert.Contains(t, buf.String(), `"unit_file":"units/corsair.yaml"`)
}

func TestContextHandler_NoUnitFile(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil), UnitFileAttrs))

	logger.Info("Loaded equipment catalog")

	assert.Contains(t, buf.String(), "Loaded equipment catalog")
	assert.NotContains(t, buf.String(), "unit_file")
}

func TestContextHandler_NilProvider(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil), nil))

	logger.InfoContext(WithUnitFile(context.Background(), "a.yaml"), "plain")

	assert.NotContains(t, buf.String(), "unit_file")
}

func TestContextHandler_WithAttrsAndGroupKeepProvider(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil), UnitFileAttrs))
	logger := base.With("command", "watch").WithGroup("render")

	logger.InfoContext(WithUnitFile(context.Background(), "b.yaml"), "done", "format", "text")

	out := buf.String()
	assert.Contains(t, out, `"command":"watch"`)
	assert.Contains(t, out, `"render":{`)
	assert.Contains(t, out, `"unit_file":"b.yaml"`)
}

func TestContextHandler_EmptyGroupReturnsSelf(t *testing.T) {
	h := NewContextHandler(slog.NewJSONHandler(&bytes.Buffer{}, nil), UnitFileAttrs)
	assert.Same(t, h, h.WithGroup(""))
}

func TestContextHandler_EnabledDelegates(t *testing.T) {
	h := NewContextHandler(slog.NewJSONHandler(&bytes.Buffer{}, HandlerOptions("warn")), UnitFileAttrs)
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestSetup_UnitFileFromContext(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", nil)

	m.Logger().InfoContext(WithUnitFile(context.Background(), "units/leopard.yaml"), "Generated readout")

	assert.Contains(t, buf.String(), "unit_file=units/leopard.yaml")
}
