// Package app assembles the service from its providers.
package app

import (
	"context"
	"time"

	"github.com/ncobase/example-api/config"
	"github.com/ncobase/example-api/data"
	"github.com/ncobase/example-api/internal/server"
	"github.com/ncobase/example-api/logging/logger"
	"github.com/ncobase/example-api/logging/observes"
	"github.com/ncobase/example-api/version"
)

// App is a fully wired service
type App struct {
	Config    *config.Config
	Logger    *logger.Logger
	Data      *data.Data
	Server    *server.Server
	Telemetry *Telemetry
}

func NewApp(cfg *config.Config, l *logger.Logger, d *data.Data, srv *server.Server, t *Telemetry) *App {
	return &App{Config: cfg, Logger: l, Data: d, Server: srv, Telemetry: t}
}

// Migrator runs schema migrations without starting the server
type Migrator struct {
	Config *config.Config
	Logger *logger.Logger
	Data   *data.Data
}

func NewMigrator(cfg *config.Config, l *logger.Logger, d *data.Data) *Migrator {
	return &Migrator{Config: cfg, Logger: l, Data: d}
}

// Telemetry records which exporters are active
type Telemetry struct {
	Sentry  bool
	Tracing bool
}

// ProvideTelemetry starts Sentry and the OTLP tracer when they are
// configured. The cleanup flushes both.
func ProvideTelemetry(cfg *config.Config, l *logger.Logger) (*Telemetry, func(), error) {
	t := &Telemetry{}
	obs := cfg.Observes
	if obs == nil {
		return t, func() {}, nil
	}

	var sentryOpt *observes.SentryOptions
	if obs.Sentry.Enabled() {
		sentryOpt = &observes.SentryOptions{
			Dsn:         obs.Sentry.Endpoint,
			Name:        cfg.AppName,
			Release:     releaseOr(obs.Sentry.Release),
			Environment: obs.Sentry.Environment,
			SampleRate:  obs.Sentry.SampleRate,
		}
	}
	flush, err := observes.NewSentry(sentryOpt)
	if err != nil {
		return nil, nil, err
	}
	t.Sentry = sentryOpt != nil

	var tracerOpt *observes.TracerOption
	if obs.Tracer.Enabled() {
		tc := obs.Tracer
		tracerOpt = &observes.TracerOption{
			URL:                tc.Endpoint,
			Name:               tc.ServiceName,
			Version:            releaseOr(tc.ServiceVersion),
			Environment:        tc.Environment,
			SamplingRate:       tc.SamplingRate,
			BatchTimeout:       tc.BatchTimeout,
			ExportTimeout:      tc.ExportTimeout,
			MaxExportBatchSize: tc.MaxExportBatchSize,
			Insecure:           tc.Insecure,
		}
	}
	shutdown, err := observes.NewTracer(tracerOpt)
	if err != nil {
		flush()
		return nil, nil, err
	}
	t.Tracing = tracerOpt != nil

	if t.Sentry || t.Tracing {
		l.Info(context.Background(), "Telemetry enabled", "sentry", t.Sentry, "tracing", t.Tracing)
	}

	return t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			l.Warn(ctx, "Failed to shutdown tracer", "error", err)
		}
		flush()
	}, nil
}

func releaseOr(v string) string {
	if v != "" {
		return v
	}
	return version.GetVersionInfo().Version
}
