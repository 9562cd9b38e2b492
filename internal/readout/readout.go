// Package readout turns unit files into rendered, archived Technical Readouts.
package readout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/trokit/aerotro/internal/api"
	"github.com/trokit/aerotro/internal/influx"
	"github.com/trokit/aerotro/internal/messages"
	"github.com/trokit/aerotro/internal/parser"
	"github.com/trokit/aerotro/internal/render"
	"github.com/trokit/aerotro/internal/storage"
	"github.com/trokit/aerotro/internal/tro"
	"github.com/trokit/aerotro/internal/util"
	"github.com/trokit/aerotro/pkg/core"
)

// StatsWriter receives one record per generated readout.
type StatsWriter interface {
	WriteBuild(ctx context.Context, stats influx.BuildStats) error
}

// Publisher uploads an exported readout file.
type Publisher interface {
	Upload(ctx context.Context, filePath string, meta api.UploadMetadata) error
}

// Dependencies holds everything the service needs. Storage, Stats and
// Publisher are optional. Publisher only sees backends that export files.
type Dependencies struct {
	Parser    *parser.Parser
	Renderer  *render.Renderer
	Messages  *messages.Catalog
	Storage   storage.Backend
	Stats     StatsWriter
	Publisher Publisher
	Logger    *slog.Logger
	ArcSets   []tro.ArcSet
}

// Result is a generated readout together with the model it was rendered from.
type Result struct {
	Readout *core.Readout
	Report  *tro.Report
}

// Service generates readouts.
type Service struct {
	deps Dependencies

	generated   metric.Int64Counter
	failed      metric.Int64Counter
	diagnostics metric.Int64Counter
	duration    metric.Float64Histogram
}

// New creates a Service. Parser and Renderer are required.
func New(deps Dependencies) (*Service, error) {
	if deps.Parser == nil || deps.Renderer == nil {
		return nil, errors.New("readout service needs a parser and a renderer")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Messages == nil {
		deps.Messages = messages.MustLoad("en")
	}

	s := &Service{deps: deps}
	m := meter()

	var err error
	s.generated, err = m.Int64Counter(
		"aerotro.readouts.generated",
		metric.WithDescription("Total readouts generated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating generated counter: %w", err)
	}

	s.failed, err = m.Int64Counter(
		"aerotro.readouts.failed",
		metric.WithDescription("Total unit files that could not be turned into a readout"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	s.diagnostics, err = m.Int64Counter(
		"aerotro.readouts.diagnostics",
		metric.WithDescription("Total equipment problems skipped while building readouts"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating diagnostics counter: %w", err)
	}

	s.duration, err = m.Float64Histogram(
		"aerotro.readouts.duration",
		metric.WithDescription("Time to build and render one readout"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return s, nil
}

// Generate parses the unit file at path and renders it in format f.
func (s *Service) Generate(ctx context.Context, path string, f render.Format) (*Result, error) {
	unit, weights, err := s.deps.Parser.ParseFile(path)
	if err != nil {
		s.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "parse")))
		return nil, err
	}
	return s.GenerateUnit(ctx, unit, weights, f)
}

// GenerateUnit builds, renders and archives a readout for unit.
func (s *Service) GenerateUnit(ctx context.Context, unit *core.Aero, verifier core.Verifier, f render.Format) (*Result, error) {
	start := time.Now()
	formatAttr := attribute.String("format", string(f))

	report := tro.NewBuilder(unit, verifier, tro.Options{
		Logger:   s.deps.Logger,
		Messages: s.deps.Messages,
		ArcSets:  s.deps.ArcSets,
	}).Build()

	doc, err := s.deps.Renderer.RenderString(report, f)
	if err != nil {
		s.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "render"), formatAttr))
		return nil, fmt.Errorf("%s: %w", unit.FullName(), err)
	}

	modelJSON, err := json.Marshal(report.Model)
	if err != nil {
		s.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "encode"), formatAttr))
		return nil, fmt.Errorf("failed to encode model for %s: %w", unit.FullName(), err)
	}

	r := &core.Readout{
		ID:          uuid.NewString(),
		UnitName:    unit.FullName(),
		Chassis:     unit.Chassis,
		Model:       unit.Model,
		Format:      string(f),
		GeneratedAt: start,
		Document:    doc,
		ModelJSON:   modelJSON,
		Diagnostics: report.Diagnostics,
	}
	elapsed := time.Since(start)

	if s.deps.Storage != nil {
		if err := s.deps.Storage.SaveReadout(r); err != nil {
			s.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "store"), formatAttr))
			return nil, fmt.Errorf("failed to store readout for %s: %w", r.UnitName, err)
		}
		s.publish(ctx, r)
	}

	if s.deps.Stats != nil {
		stats := influx.BuildStats{
			Unit:        r.UnitName,
			Format:      r.Format,
			Bays:        len(unit.WeaponBays) + len(unit.TransportBays),
			Weapons:     countWeapons(unit),
			Diagnostics: len(r.Diagnostics),
			Duration:    elapsed,
			At:          start,
		}
		// stats are best effort
		if err := s.deps.Stats.WriteBuild(ctx, stats); err != nil {
			s.deps.Logger.WarnContext(ctx, "Failed to record build statistics", "unit", r.UnitName, "error", err)
		}
	}

	s.generated.Add(ctx, 1, metric.WithAttributes(formatAttr))
	s.diagnostics.Add(ctx, int64(len(r.Diagnostics)), metric.WithAttributes(formatAttr))
	s.duration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(formatAttr))

	s.deps.Logger.InfoContext(ctx, "Generated readout",
		"unit", r.UnitName,
		"id", r.ID,
		"format", r.Format,
		"diagnostics", len(r.Diagnostics),
		"duration", elapsed)

	return &Result{Readout: r, Report: report}, nil
}

func (s *Service) publish(ctx context.Context, r *core.Readout) {
	if s.deps.Publisher == nil {
		return
	}
	exporter, ok := s.deps.Storage.(storage.Exporter)
	if !ok {
		return
	}
	path := exporter.LastExportPath()
	if path == "" {
		return
	}
	if err := s.deps.Publisher.Upload(ctx, path, api.MetadataFor(r)); err != nil {
		s.deps.Logger.WarnContext(ctx, "Failed to upload readout", "unit", r.UnitName, "path", path, "error", err)
		return
	}
	s.deps.Logger.DebugContext(ctx, "Uploaded readout", "unit", r.UnitName, "path", path)
}

func countWeapons(unit *core.Aero) int {
	n := 0
	for _, m := range unit.Mounts {
		if m != nil && m.Type != nil && m.Type.Kind == core.KindWeapon {
			n++
		}
	}
	return n
}

// DocumentFileName names the output file for r, e.g. "Corsair_CSR-V12.html".
func DocumentFileName(r *core.Readout) string {
	name := util.SafeFileName(r.UnitName)
	if name == "" {
		name = "readout"
	}
	f, err := render.ParseFormat(r.Format)
	if err != nil {
		f = render.FormatText
	}
	return name + f.Ext()
}

// WriteDocument writes the rendered document into dir and returns its path.
func WriteDocument(dir string, r *core.Readout) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, DocumentFileName(r))
	if err := os.WriteFile(path, []byte(r.Document), 0644); err != nil {
		return "", fmt.Errorf("failed to write readout: %w", err)
	}
	return path, nil
}
