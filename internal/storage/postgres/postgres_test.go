package postgres

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trokit/aerotro/pkg/core"
)

func TestNew_FallsBackToSQLite(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("db.host", "127.0.0.1")
	viper.Set("db.port", "1")
	viper.Set("db.username", "nobody")
	viper.Set("db.password", "nothing")
	viper.Set("db.database", "aerotro")

	b, err := New(filepath.Join(t.TempDir(), "fallback.db"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	defer b.Close()

	assert.True(t, b.IsLocal())

	require.NoError(t, b.SaveReadout(&core.Readout{ID: "00000000-0000-0000-0000-000000000003", UnitName: "Sabre", GeneratedAt: time.Now()}))
	list, err := b.ListReadouts()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sabre", list[0].UnitName)
}
