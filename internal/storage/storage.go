// Package storage defines the readout archive backends.
package storage

import "github.com/trokit/aerotro/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveReadout archives a generated readout.
	SaveReadout(r *core.Readout) error
	// ListReadouts returns archived readouts, newest first.
	ListReadouts() ([]core.Readout, error)
}

// Exporter is an optional interface for backends that write each readout
// to its own file.
type Exporter interface {
	LastExportPath() string
}

// Snapshotter is an optional interface for backends that can copy their
// archive to a standalone file.
type Snapshotter interface {
	Snapshot(dest string) error
}
