//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/ncobase/example-api/biz/example"
	"github.com/ncobase/example-api/config"
	"github.com/ncobase/example-api/data"
	"github.com/ncobase/example-api/internal/server"
	"github.com/ncobase/example-api/logging/logger"
)

// InitializeApp wires the service with every dependency.
// The cleanup releases connections and flushes telemetry.
func InitializeApp() (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		data.ProviderSet,
		example.ProviderSet,
		server.ProviderSet,
		ProvideTelemetry,
		NewApp,
	))
}

// InitializeMigrator wires only what schema migration needs
func InitializeMigrator() (*Migrator, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		data.ProviderSet,
		NewMigrator,
	))
}
