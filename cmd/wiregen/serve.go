package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"wiregen/internal/config"
	"wiregen/internal/generator"
	"wiregen/internal/httpapi"
	"wiregen/internal/registry"
	"wiregen/internal/service"
	"wiregen/pkg/types"
)

const shutdownTimeout = 5 * time.Second

// serve runs the HTTP server until ctx is canceled.
func serve(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			AttachStacktrace: true,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	svc, err := buildService(ctx, cfg, log)
	if err != nil {
		// Keep serving so /readyz and /status report the problem.
		log.Error().Err(err).Str("provider", cfg.Provider).Msg("generator unavailable")
		models, cerr := buildCatalog(cfg)
		if cerr != nil {
			return cerr
		}
		svc = service.New(serviceConfig(cfg, nil, models))
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetMaxUploadBytes(cfg.MaxUploadBytes)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, nil, nil)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("provider", cfg.Provider).Str("default_model", cfg.DefaultModel).Msg("wiregen listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	// Abort generations still running after the grace period.
	cancelBase()
	return nil
}

// buildCatalog merges configured model ids and the optional catalog file.
func buildCatalog(cfg config.Config) ([]types.Model, error) {
	sources := [][]types.Model{registry.FromIDs(cfg.Models, cfg.Provider)}
	if cfg.ModelsFile != "" {
		fromFile, err := registry.LoadFile(cfg.ModelsFile, cfg.Provider)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fromFile)
	}
	return registry.Build(cfg.DefaultModel, cfg.Provider, sources...), nil
}

// buildService wires the configured generator and catalog into a Service.
func buildService(ctx context.Context, cfg config.Config, log zerolog.Logger) (*service.Service, error) {
	models, err := buildCatalog(cfg)
	if err != nil {
		return nil, err
	}
	gen, err := generator.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init %s generator: %w", cfg.Provider, err)
	}
	log.Debug().Str("provider", gen.Name()).Int("models", len(models)).Msg("generator ready")
	return service.New(serviceConfig(cfg, gen, models)), nil
}

func serviceConfig(cfg config.Config, gen generator.Generator, models []types.Model) service.Config {
	return service.Config{
		Generator:       gen,
		Models:          models,
		DefaultModel:    cfg.DefaultModel,
		RestrictModels:  cfg.RestrictModels,
		MaxConcurrent:   cfg.MaxConcurrent,
		MaxQueueDepth:   cfg.MaxQueueDepth,
		MaxWait:         cfg.MaxWait.Std(),
		GenerateTimeout: cfg.GenerateTimeout.Std(),
	}
}
