package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/ncobase/example-api/data"
	"github.com/ncobase/example-api/data/config"
)

// sqlDriverName is the database/sql name of the sqlite3 driver with
// Unicode-aware LOWER and UPPER. The built-in ones only fold ASCII.
const sqlDriverName = "sqlite3_unicode"

func registerUnicodeFuncs(conn *sqlite3.SQLiteConn) error {
	if err := conn.RegisterFunc("lower", strings.ToLower, true); err != nil {
		return fmt.Errorf("sqlite: failed to register lower: %w", err)
	}
	if err := conn.RegisterFunc("upper", strings.ToUpper, true); err != nil {
		return fmt.Errorf("sqlite: failed to register upper: %w", err)
	}
	return nil
}

type driver struct{}

func (d *driver) Name() string {
	return "sqlite"
}

func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	dbCfg, ok := cfg.(*config.DBNode)
	if !ok {
		return nil, fmt.Errorf("sqlite: invalid configuration type, expected *config.DBNode")
	}
	if dbCfg.Source == "" {
		return nil, fmt.Errorf("sqlite: connection source is empty")
	}

	db, err := sql.Open(sqlDriverName, normalizeSource(dbCfg.Source))
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open connection: %w", err)
	}

	// one connection serializes writes and keeps :memory: databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if dbCfg.MaxOpenConn > 1 && !isMemory(dbCfg.Source) {
		db.SetMaxOpenConns(dbCfg.MaxOpenConn)
		if dbCfg.MaxIdleConn > 0 {
			db.SetMaxIdleConns(dbCfg.MaxIdleConn)
		}
	}
	if dbCfg.ConnMaxLifeTime > 0 && !isMemory(dbCfg.Source) {
		db.SetConnMaxLifetime(dbCfg.ConnMaxLifeTime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}

	return db, nil
}

// normalizeSource strips the sqlite:// scheme used in DATABASE_URL style sources
func normalizeSource(source string) string {
	if rest, ok := strings.CutPrefix(source, "sqlite://"); ok {
		return rest
	}
	return source
}

func isMemory(source string) bool {
	return strings.Contains(source, ":memory:") || strings.Contains(source, "mode=memory")
}

func (d *driver) Close(conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("sqlite: invalid connection type, expected *sql.DB")
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("sqlite: failed to close connection: %w", err)
	}
	return nil
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("sqlite: invalid connection type, expected *sql.DB")
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

func init() {
	sql.Register(sqlDriverName, &sqlite3.SQLiteDriver{ConnectHook: registerUnicodeFuncs})
	data.RegisterDatabaseDriver(&driver{})
}
