package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/trokit/aerotro/internal/config"
	"github.com/trokit/aerotro/internal/equipment"
	"github.com/trokit/aerotro/internal/logging"
	"github.com/trokit/aerotro/internal/messages"
	intOtel "github.com/trokit/aerotro/internal/otel"
	"github.com/trokit/aerotro/internal/parser"
	"github.com/trokit/aerotro/internal/readout"
	"github.com/trokit/aerotro/internal/render"
	"github.com/trokit/aerotro/internal/storage"
)

// app holds the process-wide services shared by all commands.
type app struct {
	start time.Time

	slogManager *logging.SlogManager
	logger      *slog.Logger
	zlog        zerolog.Logger
	logFile     *os.File
	closers     []io.Closer
	otel        *intOtel.Provider

	registry *equipment.Registry
	messages *messages.Catalog

	storage storage.Backend
	stats   statsCloser
	service *readout.Service
}

type statsCloser interface {
	readout.StatsWriter
	Close() error
}

func newApp() (*app, error) {
	a := &app{start: time.Now()}

	// stderr until the config tells us where the log file lives
	a.slogManager = logging.NewSlogManager()
	a.slogManager.Setup(nil, viper.GetString("logLevel"), nil)
	a.logger = a.slogManager.Logger()

	if err := config.Load(configDir); err != nil {
		a.logger.Debug("Failed to load config, using defaults", "error", err)
	} else {
		a.logger.Debug("Loaded config", "dir", configDir)
	}

	a.setupLogging()

	registry, err := equipment.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment catalog: %w", err)
	}
	if path := viper.GetString("equipment.catalog"); path != "" {
		if err := registry.LoadFile(path); err != nil {
			return nil, err
		}
		a.logger.Info("Loaded equipment catalog", "path", path, "types", registry.Len())
	}
	a.registry = registry

	catalog, err := messages.Load(viper.GetString("locale"))
	if err != nil {
		return nil, err
	}
	if path := viper.GetString("messages.file"); path != "" {
		if err := catalog.Merge(path); err != nil {
			return nil, err
		}
	}
	a.messages = catalog

	return a, nil
}

// setupLogging moves logging to the log file and attaches OTel and Graylog
// when configured. Failures keep logging on stderr.
func (a *app) setupLogging() {
	level := viper.GetString("logLevel")
	logsDir := viper.GetString("logsDir")

	var file io.Writer
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		a.logger.Warn("Failed to create logs directory", "error", err, "path", logsDir)
	} else {
		path := logging.LogFilePath(logsDir, appName, a.start)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			a.logger.Warn("Failed to create/open log file", "error", err, "path", path)
		} else {
			a.logFile = f
			file = f
		}
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		provider, err := intOtel.New(context.Background(), otelCfg, file)
		if err != nil {
			a.logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			a.otel = provider
		}
	}

	var extra []slog.Handler
	if viper.GetBool("graylog.enabled") {
		addr := viper.GetString("graylog.address")
		h, closer, err := logging.NewGraylogHandler(addr, level)
		if err != nil {
			a.logger.Error("Failed to connect to Graylog", "error", err, "address", addr)
		} else {
			extra = append(extra, h)
			a.closers = append(a.closers, closer)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if a.otel != nil {
		otelLogProvider = a.otel.LoggerProvider()
	}
	a.slogManager.Setup(file, level, otelLogProvider, extra...)
	a.logger = a.slogManager.Logger()
	slog.SetDefault(a.logger)

	a.zlog = logging.NewZerolog(file, level)
}

// readoutService connects storage and statistics on first use.
func (a *app) readoutService(ctx context.Context) (*readout.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	if err := a.initStorage(); err != nil {
		return nil, err
	}
	a.initStats(ctx)

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	deps := readout.Dependencies{
		Parser:   parser.NewParser(a.logger, a.registry),
		Renderer: renderer,
		Messages: a.messages,
		Storage:  a.storage,
		Logger:   a.logger,
	}
	if a.stats != nil {
		deps.Stats = a.stats
	}
	if client := a.initPublisher(ctx); client != nil {
		deps.Publisher = client
	}

	a.service, err = readout.New(deps)
	if err != nil {
		return nil, err
	}
	return a.service, nil
}

func (a *app) close(ctx context.Context) {
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			a.logger.Error("Failed to close storage", "error", err)
		}
	}
	if a.stats != nil {
		if err := a.stats.Close(); err != nil {
			a.logger.Error("Failed to close InfluxDB manager", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if a.otel != nil {
		if err := a.otel.Shutdown(ctx); err != nil {
			a.logger.Error("Failed to shut down OTel provider", "error", err)
		}
	}
	_ = a.slogManager.Flush(ctx)

	for _, c := range a.closers {
		_ = c.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
