// Package example wires the example resource: store, service and routes.
package example

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/ncobase/example-api/biz/example/data/repository"
	"github.com/ncobase/example-api/biz/example/handler"
	"github.com/ncobase/example-api/biz/example/service"
	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/data"
	"github.com/ncobase/example-api/data/cache"
	dc "github.com/ncobase/example-api/data/config"
	"github.com/ncobase/example-api/logging/logger"
)

// ProviderSet is the wire provider set for the example module
var ProviderSet = wire.NewSet(ProvideModule)

type Module struct {
	repo    repository.ExampleRepository
	service *service.Service
	handler *handler.Handler
	logger  *logger.Logger
}

// ProvideModule builds the module on the connections in d
func ProvideModule(d *data.Data, cfg *dc.Config, l *logger.Logger) (*Module, error) {
	return New(context.Background(), d, cfg, l)
}

func New(ctx context.Context, d *data.Data, cfg *dc.Config, l *logger.Logger) (*Module, error) {
	if l == nil {
		l = logger.StdLogger()
	}

	repo, err := NewRepository(ctx, d, cfg, l)
	if err != nil {
		return nil, err
	}

	svc := service.New(repo, l)
	m := &Module{
		repo:    repo,
		service: svc,
		handler: handler.New(svc, l),
		logger:  l,
	}
	l.Info(ctx, "Example module initialized", "store", storeName(d), "cache", d != nil && d.Redis != nil)
	return m, nil
}

// NewRepository picks the store: memory when no database is configured,
// otherwise SQL on the configured driver. A Redis connection adds the
// read-through cache in front of either.
func NewRepository(ctx context.Context, d *data.Data, cfg *dc.Config, l *logger.Logger) (repository.ExampleRepository, error) {
	var repo repository.ExampleRepository = repository.NewMemoryExampleRepository()

	if d.HasDB() {
		sqlRepo, err := repository.NewSQLExampleRepository(d.DB, d.Driver)
		if err != nil {
			return nil, err
		}
		if cfg != nil && cfg.Database != nil && cfg.Database.Migrate {
			if err := sqlRepo.Migrate(ctx); err != nil {
				return nil, fmt.Errorf("example: migrate: %w", err)
			}
		}
		repo = sqlRepo
	}

	if d != nil && d.Redis != nil {
		opts := repository.CacheOptions{}
		prefix := "example"
		if cfg != nil && cfg.Cache != nil {
			opts = repository.CacheOptions{
				TTL:             cfg.Cache.TTL,
				BreakerFailures: cfg.Cache.BreakerFailures,
				BreakerTimeout:  cfg.Cache.BreakerTimeout,
			}
			prefix = cfg.Cache.KeyPrefix
		}
		c := cache.NewCache[structs.Example](d.Redis, prefix)
		repo = repository.NewCachedExampleRepository(repo, c, opts, l)
	}

	return repo, nil
}

// Migrate creates the examples table on the configured database
func Migrate(ctx context.Context, d *data.Data) error {
	if !d.HasDB() {
		return data.ErrNoDatabase
	}
	repo, err := repository.NewSQLExampleRepository(d.DB, d.Driver)
	if err != nil {
		return err
	}
	return repo.Migrate(ctx)
}

func storeName(d *data.Data) string {
	if d.HasDB() {
		return d.Driver
	}
	return "memory"
}

// RegisterRoutes mounts the module routes under r
func (m *Module) RegisterRoutes(r gin.IRouter) {
	m.handler.RegisterRoutes(r)
}

// Ping checks the backing store
func (m *Module) Ping(ctx context.Context) error {
	return m.service.Ping(ctx)
}

func (m *Module) Service() *service.Service {
	return m.service
}
