// Package otel sets up the OpenTelemetry log pipeline that the slog bridge
// writes into.
package otel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/trokit/aerotro/internal/config"
)

// ErrNoOutputs is returned when OTel is enabled with neither a log writer nor
// an OTLP endpoint.
var ErrNoOutputs = errors.New("OTel enabled but no log writer or endpoint configured")

// Provider owns the OTel log provider. A disabled Provider is a no-op.
type Provider struct {
	logProvider *sdklog.LoggerProvider
	enabled     bool
}

// New builds a Provider from cfg. OTel records are written to logWriter
// when it is non-nil and shipped to cfg.Endpoint when set.
func New(ctx context.Context, cfg config.OTelConfig, logWriter io.Writer) (*Provider, error) {
	p := &Provider{enabled: cfg.Enabled}
	if !cfg.Enabled {
		return p, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}

	if logWriter != nil {
		proc, err := fileProcessor(logWriter, cfg.BatchTimeout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdklog.WithProcessor(proc))
	}
	if cfg.Endpoint != "" {
		proc, err := otlpProcessor(ctx, cfg.Endpoint, cfg.Insecure, cfg.BatchTimeout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdklog.WithProcessor(proc))
	}
	if len(opts) == 1 {
		return nil, ErrNoOutputs
	}

	p.logProvider = sdklog.NewLoggerProvider(opts...)
	return p, nil
}

func fileProcessor(w io.Writer, timeout time.Duration) (sdklog.Processor, error) {
	exporter, err := stdoutlog.New(
		stdoutlog.WithWriter(w),
		stdoutlog.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file log exporter: %w", err)
	}
	return sdklog.NewBatchProcessor(exporter, sdklog.WithExportTimeout(timeout)), nil
}

func otlpProcessor(ctx context.Context, endpoint string, insecure bool, timeout time.Duration) (sdklog.Processor, error) {
	opts := []otlploghttp.Option{otlploghttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlploghttp.WithInsecure())
	}
	exporter, err := otlploghttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}
	return sdklog.NewBatchProcessor(exporter, sdklog.WithExportTimeout(timeout)), nil
}

// LoggerProvider returns the provider for the otelslog bridge, nil when disabled.
func (p *Provider) LoggerProvider() *sdklog.LoggerProvider {
	return p.logProvider
}

// Enabled reports whether OTel is enabled.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Flush exports pending log records.
func (p *Provider) Flush(ctx context.Context) error {
	if p.logProvider == nil {
		return nil
	}
	if err := p.logProvider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("log flush failed: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the log provider. Call it before the process exits.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.logProvider == nil {
		return nil
	}
	if err := p.logProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("log shutdown failed: %w", err)
	}
	return nil
}
