package data

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Driver interfaces follow database/sql: drivers register themselves from
// init() and are looked up at runtime by the name in configuration.

// DatabaseDriver defines the interface for relational database drivers.
type DatabaseDriver interface {
	// Name returns the driver identifier (e.g., "postgres", "mysql", "sqlite")
	Name() string

	// Connect opens and verifies a connection. cfg is a *config.DBNode.
	Connect(ctx context.Context, cfg any) (any, error)

	// Close terminates the database connection and releases resources.
	Close(conn any) error

	// Ping verifies the connection is alive and functional.
	Ping(ctx context.Context, conn any) error
}

// CacheDriver defines the interface for cache/key-value store drivers.
type CacheDriver interface {
	// Name returns the driver identifier (e.g., "redis")
	Name() string

	// Connect establishes a new cache connection. cfg is a *config.Redis.
	Connect(ctx context.Context, cfg any) (any, error)

	// Close terminates the cache connection.
	Close(conn any) error

	// Ping verifies the cache connection is alive.
	Ping(ctx context.Context, conn any) error
}

var (
	databaseDrivers   = make(map[string]DatabaseDriver)
	databaseDriversMu sync.RWMutex

	cacheDrivers   = make(map[string]CacheDriver)
	cacheDriversMu sync.RWMutex
)

// RegisterDatabaseDriver makes a database driver available by the provided name.
// It is intended to be called from the init function in driver packages:
//
//	func init() {
//	    data.RegisterDatabaseDriver(&driver{})
//	}
//
// It panics if driver is nil, unnamed or already registered.
func RegisterDatabaseDriver(driver DatabaseDriver) {
	databaseDriversMu.Lock()
	defer databaseDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterDatabaseDriver driver is nil")
	}
	name := driver.Name()
	if name == "" {
		panic("data: RegisterDatabaseDriver driver name is empty")
	}
	if _, exists := databaseDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterDatabaseDriver called twice for driver %s", name))
	}

	databaseDrivers[name] = driver
}

// RegisterCacheDriver makes a cache driver available by the provided name.
// It follows the same rules as RegisterDatabaseDriver.
func RegisterCacheDriver(driver CacheDriver) {
	cacheDriversMu.Lock()
	defer cacheDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterCacheDriver driver is nil")
	}
	name := driver.Name()
	if name == "" {
		panic("data: RegisterCacheDriver driver name is empty")
	}
	if _, exists := cacheDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterCacheDriver called twice for driver %s", name))
	}

	cacheDrivers[name] = driver
}

// GetDatabaseDriver retrieves a registered database driver by name.
func GetDatabaseDriver(name string) (DatabaseDriver, error) {
	databaseDriversMu.RLock()
	defer databaseDriversMu.RUnlock()

	driver, ok := databaseDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: database driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/example-api/data/%s\"\n\n"+
				"Available drivers: %v",
			name, name, sortedKeys(databaseDrivers),
		)
	}
	return driver, nil
}

// GetCacheDriver retrieves a registered cache driver by name.
func GetCacheDriver(name string) (CacheDriver, error) {
	cacheDriversMu.RLock()
	defer cacheDriversMu.RUnlock()

	driver, ok := cacheDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: cache driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/example-api/data/%s\"\n\n"+
				"Available drivers: %v",
			name, name, sortedKeys(cacheDrivers),
		)
	}
	return driver, nil
}

// ListRegisteredDrivers returns a snapshot of all registered drivers.
func ListRegisteredDrivers() map[string][]string {
	databaseDriversMu.RLock()
	db := sortedKeys(databaseDrivers)
	databaseDriversMu.RUnlock()

	cacheDriversMu.RLock()
	cache := sortedKeys(cacheDrivers)
	cacheDriversMu.RUnlock()

	return map[string][]string{"database": db, "cache": cache}
}

// sortedKeys must be called with the matching lock held
func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
