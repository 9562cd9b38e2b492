// Package postgres implements the storage.Backend interface using
// GORM/PostgreSQL, falling back to a local SQLite file when the server is
// unreachable.
package postgres

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trokit/aerotro/internal/database"
	gormstorage "github.com/trokit/aerotro/internal/storage/gorm"
)

// Backend wraps the GORM backend with a Postgres connection.
type Backend struct {
	*gormstorage.Backend
	manager *database.Manager
}

// New connects using the db.* settings. fallbackPath is the SQLite file used
// when Postgres cannot be reached; empty means in memory.
func New(fallbackPath string, log zerolog.Logger) (*Backend, error) {
	m := database.NewManager(log)
	m.SqliteFilePath = fallbackPath

	if err := m.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect readout database: %w", err)
	}
	if m.ShouldSaveLocal {
		log.Warn().Str("path", fallbackPath).Msg("Postgres unavailable, storing readouts locally")
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{DB: m.DB, Logger: log}),
		manager: m,
	}, nil
}

// IsLocal reports whether the backend fell back to SQLite.
func (b *Backend) IsLocal() bool {
	return b.manager.ShouldSaveLocal
}
