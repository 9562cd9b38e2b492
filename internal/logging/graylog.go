package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGraylogHandler connects a GELF UDP writer to addr and returns a JSON
// handler writing to it. The returned closer releases the connection.
func NewGraylogHandler(addr, level string) (slog.Handler, io.Closer, error) {
	w, err := gelf.NewWriter(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GELF writer for %s: %w", addr, err)
	}
	w.Facility = "aerotro"
	return slog.NewJSONHandler(w, HandlerOptions(level)), w, nil
}
