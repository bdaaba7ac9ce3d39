package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncobase/example-api/data/config"
	"github.com/redis/go-redis/v9"
)

// ErrNoDatabase is returned by DB accessors when no SQL store is configured
var ErrNoDatabase = errors.New("data: no database configured")

// Data holds the connections the application was configured with.
// Both DB and Redis are optional.
type Data struct {
	DB     *sql.DB
	Driver string
	Redis  *redis.Client

	dbDriver    DatabaseDriver
	cacheDriver CacheDriver
}

// New opens the configured connections through the driver registry.
// The returned cleanup closes everything New opened.
func New(ctx context.Context, cfg *config.Config) (*Data, func(), error) {
	d := &Data{}
	if cfg == nil {
		return d, func() {}, nil
	}

	if cfg.Database != nil && cfg.Database.Master.Enabled() {
		node := cfg.Database.Master
		driver, err := GetDatabaseDriver(node.Driver)
		if err != nil {
			return nil, nil, err
		}
		conn, err := driver.Connect(ctx, node)
		if err != nil {
			return nil, nil, err
		}
		db, ok := conn.(*sql.DB)
		if !ok {
			_ = driver.Close(conn)
			return nil, nil, fmt.Errorf("data: driver %s returned %T, expected *sql.DB", node.Driver, conn)
		}
		d.DB, d.Driver, d.dbDriver = db, driver.Name(), driver
	}

	if cfg.Redis.Enabled() {
		driver, err := GetCacheDriver("redis")
		if err != nil {
			d.Close()
			return nil, nil, err
		}
		conn, err := driver.Connect(ctx, cfg.Redis)
		if err != nil {
			d.Close()
			return nil, nil, err
		}
		client, ok := conn.(*redis.Client)
		if !ok {
			_ = driver.Close(conn)
			d.Close()
			return nil, nil, fmt.Errorf("data: cache driver returned %T, expected *redis.Client", conn)
		}
		d.Redis, d.cacheDriver = client, driver
	}

	return d, func() { d.Close() }, nil
}

// HasDB reports whether a SQL store is connected
func (d *Data) HasDB() bool {
	return d != nil && d.DB != nil
}

// Ping checks every open connection
func (d *Data) Ping(ctx context.Context) error {
	if d == nil {
		return nil
	}
	var errs []error
	if d.DB != nil {
		errs = append(errs, d.dbDriver.Ping(ctx, d.DB))
	}
	if d.Redis != nil {
		errs = append(errs, d.cacheDriver.Ping(ctx, d.Redis))
	}
	return errors.Join(errs...)
}

// Close closes every open connection and returns the errors encountered
func (d *Data) Close() []error {
	if d == nil {
		return nil
	}
	var errs []error
	if d.DB != nil {
		if err := d.dbDriver.Close(d.DB); err != nil {
			errs = append(errs, err)
		}
		d.DB = nil
	}
	if d.Redis != nil {
		if err := d.cacheDriver.Close(d.Redis); err != nil {
			errs = append(errs, err)
		}
		d.Redis = nil
	}
	return errs
}
