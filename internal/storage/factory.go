package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trokit/aerotro/internal/config"
	"github.com/trokit/aerotro/internal/storage/memory"
	"github.com/trokit/aerotro/internal/storage/postgres"
	sqlitestorage "github.com/trokit/aerotro/internal/storage/sqlite"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(cfg.SQLite.Path, log)
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite, log)
	case "memory", "":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
