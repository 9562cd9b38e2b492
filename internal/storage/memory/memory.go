// Package memory keeps readouts in process and exports each one to a JSON file.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/trokit/aerotro/internal/config"
	"github.com/trokit/aerotro/pkg/core"
)

// Backend stores readouts in memory and exports them to JSON
type Backend struct {
	cfg            config.MemoryConfig
	readouts       []core.Readout
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// SaveReadout records r and, when an output directory is configured,
// writes it to <unit>_<timestamp>.json[.gz].
func (b *Backend) SaveReadout(r *core.Readout) error {
	if r == nil {
		return fmt.Errorf("nil readout")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.readouts = append(b.readouts, *r)

	if b.cfg.OutputDir == "" {
		return nil
	}
	return b.exportJSON(r)
}

// ListReadouts returns the recorded readouts, newest first.
func (b *Backend) ListReadouts() ([]core.Readout, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.Readout, len(b.readouts))
	copy(out, b.readouts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	return out, nil
}

// LastExportPath returns the file written by the most recent save.
func (b *Backend) LastExportPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
