// Package gormstorage implements the storage.Backend interface on top of GORM.
// The sqlite and postgres backends wrap it and only differ in how they open
// the connection.
package gormstorage

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trokit/aerotro/internal/database"
	"github.com/trokit/aerotro/internal/model"
	"github.com/trokit/aerotro/internal/model/convert"
	"github.com/trokit/aerotro/pkg/core"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// Backend stores readouts as model.Readout rows.
type Backend struct {
	db  *gorm.DB
	log zerolog.Logger
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{
		db:  deps.DB,
		log: deps.Logger,
	}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Init migrates the readout schema.
func (b *Backend) Init() error {
	if b.db == nil {
		return fmt.Errorf("db not connected")
	}
	if err := database.Migrate(b.db); err != nil {
		return err
	}
	b.log.Debug().Str("dialect", b.db.Dialector.Name()).Msg("Readout storage ready")
	return nil
}

// Close closes the underlying connection.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

// SaveReadout inserts r, replacing any row with the same ID.
func (b *Backend) SaveReadout(r *core.Readout) error {
	if r == nil {
		return fmt.Errorf("nil readout")
	}
	row := convert.CoreToReadout(*r)
	if err := b.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save readout %s: %w", r.ID, err)
	}
	b.log.Debug().Str("id", r.ID).Str("unit", r.UnitName).Msg("Saved readout")
	return nil
}

// ListReadouts returns all stored readouts, newest first.
func (b *Backend) ListReadouts() ([]core.Readout, error) {
	var rows []model.Readout
	if err := b.db.Order("generated_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list readouts: %w", err)
	}

	out := make([]core.Readout, 0, len(rows))
	for _, row := range rows {
		out = append(out, convert.ReadoutToCore(row))
	}
	return out, nil
}
