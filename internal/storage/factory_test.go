package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trokit/aerotro/internal/config"
	"github.com/trokit/aerotro/internal/storage"
	gormstorage "github.com/trokit/aerotro/internal/storage/gorm"
	"github.com/trokit/aerotro/internal/storage/memory"
	"github.com/trokit/aerotro/internal/storage/postgres"
	sqlitestorage "github.com/trokit/aerotro/internal/storage/sqlite"
)

// Compile-time interface checks
var (
	_ storage.Backend     = (*memory.Backend)(nil)
	_ storage.Exporter    = (*memory.Backend)(nil)
	_ storage.Backend     = (*gormstorage.Backend)(nil)
	_ storage.Backend     = (*sqlitestorage.Backend)(nil)
	_ storage.Snapshotter = (*sqlitestorage.Backend)(nil)
	_ storage.Backend     = (*postgres.Backend)(nil)
)

func TestNewBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		want    any
		wantErr bool
	}{
		{"memory", config.StorageConfig{Type: "memory"}, &memory.Backend{}, false},
		{"default", config.StorageConfig{}, &memory.Backend{}, false},
		{"sqlite", config.StorageConfig{Type: "sqlite", SQLite: config.SQLiteConfig{Path: filepath.Join(dir, "a.db")}}, &sqlitestorage.Backend{}, false},
		{"unknown", config.StorageConfig{Type: "mongo"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := storage.NewBackend(tt.cfg, zerolog.Nop())
			if tt.wantErr {
				assert.ErrorContains(t, err, "unknown storage type")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
			require.NoError(t, b.Init())
			assert.NoError(t, b.Close())
		})
	}
}
