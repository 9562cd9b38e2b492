// Package sqlitestorage implements the storage.Backend interface using a
// SQLite database file. It wraps the GORM backend via composition; the only
// SQLite-specific concerns are opening the file and taking snapshots.
package sqlitestorage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/trokit/aerotro/internal/config"
	"github.com/trokit/aerotro/internal/database"
	gormstorage "github.com/trokit/aerotro/internal/storage/gorm"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	path string
	log  zerolog.Logger
}

// New opens the SQLite database at cfg.Path. An empty path uses an
// in-memory database.
func New(cfg config.SQLiteConfig, log zerolog.Logger) (*Backend, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.NewManager(log).GetSqliteDB(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{DB: db, Logger: log}),
		path:    cfg.Path,
		log:     log,
	}, nil
}

// Path returns the database file, empty for in-memory databases.
func (b *Backend) Path() string {
	return b.path
}

// Snapshot writes a consistent copy of the database to dest via VACUUM INTO.
func (b *Backend) Snapshot(dest string) error {
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old snapshot: %w", err)
	}
	if err := b.DB().Exec("VACUUM INTO ?", dest).Error; err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}
	b.log.Debug().Str("dest", dest).Msg("Wrote database snapshot")
	return nil
}
