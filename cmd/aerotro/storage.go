package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/trokit/aerotro/internal/api"
	"github.com/trokit/aerotro/internal/config"
	"github.com/trokit/aerotro/internal/influx"
	"github.com/trokit/aerotro/internal/storage"
)

func (a *app) initStorage() error {
	storageCfg := config.GetStorageConfig()

	backend, err := storage.NewBackend(storageCfg, a.zlog)
	if err != nil {
		a.logger.Error("Failed to create storage backend", "error", err)
		return err
	}
	if err := backend.Init(); err != nil {
		a.logger.Error("Failed to initialize storage backend", "error", err)
		_ = backend.Close()
		return fmt.Errorf("failed to initialize %s storage: %w", storageCfg.Type, err)
	}

	a.storage = backend
	a.logger.Info("Storage backend initialized", "type", storageCfg.Type)
	return nil
}

// initStats connects InfluxDB when enabled. Statistics are optional, so
// failures are logged and generation continues without them.
func (a *app) initStats(ctx context.Context) {
	m := influx.NewManager(a.zlog, config.GetInfluxConfig())
	if err := m.Connect(ctx); err != nil {
		if !errors.Is(err, influx.ErrDisabled) {
			a.logger.Warn("InfluxDB unavailable, build statistics disabled", "error", err)
		}
		_ = m.Close()
		return
	}
	a.stats = m
}

// initPublisher returns an archive client when api.serverUrl is set and the
// archive answers its healthcheck.
func (a *app) initPublisher(ctx context.Context) *api.Client {
	apiCfg := config.GetAPIConfig()
	if apiCfg.ServerURL == "" {
		return nil
	}
	if _, ok := a.storage.(storage.Exporter); !ok {
		a.logger.Warn("Readout uploads need the memory storage backend with an output directory",
			"storage", config.GetStorageConfig().Type)
		return nil
	}

	client := api.New(apiCfg.ServerURL, apiCfg.APIKey)
	if err := client.Healthcheck(ctx); err != nil {
		a.logger.Warn("Readout archive unreachable, uploads disabled", "url", apiCfg.ServerURL, "error", err)
		return nil
	}
	a.logger.Info("Readout archive reachable", "url", apiCfg.ServerURL)
	return client
}
