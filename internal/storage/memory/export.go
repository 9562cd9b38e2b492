package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/trokit/aerotro/internal/util"
	"github.com/trokit/aerotro/pkg/core"
)

// ReadoutExport is the root JSON structure of an exported readout
type ReadoutExport struct {
	ID          string            `json:"id"`
	UnitName    string            `json:"unitName"`
	Chassis     string            `json:"chassis"`
	Model       string            `json:"model"`
	Format      string            `json:"format"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Document    string            `json:"document"`
	Report      json.RawMessage   `json:"report"`
	Diagnostics []core.Diagnostic `json:"diagnostics"`
}

// ExportFileName builds the export file name for r.
func ExportFileName(r *core.Readout, compress bool) string {
	name := util.SafeFileName(r.UnitName)
	if name == "" {
		name = "readout"
	}
	timestamp := r.GeneratedAt.Format("20060102_150405")

	if compress {
		return fmt.Sprintf("%s_%s.json.gz", name, timestamp)
	}
	return fmt.Sprintf("%s_%s.json", name, timestamp)
}

func buildExport(r *core.Readout) ReadoutExport {
	report := json.RawMessage("{}")
	if len(r.ModelJSON) > 0 {
		report = json.RawMessage(r.ModelJSON)
	}
	diags := r.Diagnostics
	if diags == nil {
		diags = []core.Diagnostic{}
	}
	return ReadoutExport{
		ID:          r.ID,
		UnitName:    r.UnitName,
		Chassis:     r.Chassis,
		Model:       r.Model,
		Format:      r.Format,
		GeneratedAt: r.GeneratedAt,
		Document:    r.Document,
		Report:      report,
		Diagnostics: diags,
	}
}

// exportJSON writes r to the output directory. Callers hold b.mu.
func (b *Backend) exportJSON(r *core.Readout) error {
	export := buildExport(r)
	outputPath := filepath.Join(b.cfg.OutputDir, ExportFileName(r, b.cfg.CompressOutput))

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func writeJSON(path string, data ReadoutExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data ReadoutExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
