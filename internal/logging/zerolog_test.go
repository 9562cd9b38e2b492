package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewZerolog(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewZerolog(&bytes.Buffer{}, tt.level)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewZerolog_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "info")

	log.Debug().Msg("hidden")
	log.Info().Str("path", "aerotro.db").Msg("Using local SQLite DB")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"path":"aerotro.db"`)
	assert.Contains(t, out, `"message":"Using local SQLite DB"`)
}
