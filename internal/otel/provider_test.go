package otel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trokit/aerotro/internal/config"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), config.OTelConfig{ServiceName: "aerotro"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.Nil(t, p.LoggerProvider())
	assert.NoError(t, p.Flush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNew_EnabledWithoutOutputs(t *testing.T) {
	_, err := New(context.Background(), config.OTelConfig{
		Enabled:      true,
		ServiceName:  "aerotro",
		BatchTimeout: time.Second,
	}, nil)
	assert.ErrorIs(t, err, ErrNoOutputs)
}

func TestNew_EnabledWithWriter(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(context.Background(), config.OTelConfig{
		Enabled:      true,
		ServiceName:  "aerotro",
		BatchTimeout: time.Second,
	}, &buf)
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	require.NotNil(t, p.LoggerProvider())

	assert.NoError(t, p.Flush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}
