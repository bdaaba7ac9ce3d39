package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ncobase/example-api/data"
	"github.com/ncobase/example-api/data/config"
)

type driver struct{}

func (d *driver) Name() string {
	return "mysql"
}

func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	dbCfg, ok := cfg.(*config.DBNode)
	if !ok {
		return nil, fmt.Errorf("mysql: invalid configuration type, expected *config.DBNode")
	}
	if dbCfg.Source == "" {
		return nil, fmt.Errorf("mysql: connection source is empty")
	}

	mc, err := parseSource(dbCfg.Source)
	if err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to create connector: %w", err)
	}
	db := sql.OpenDB(connector)
	data.ConfigurePool(db, dbCfg)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: failed to ping database: %w", err)
	}

	return db, nil
}

// parseSource accepts a native DSN (user:pass@tcp(host:3306)/db) or a
// mysql:// URL. Timestamps are always parsed into time.Time in UTC, and
// UPDATE reports matched rather than changed rows.
func parseSource(source string) (*mysql.Config, error) {
	var (
		mc  *mysql.Config
		err error
	)
	if strings.HasPrefix(strings.ToLower(source), "mysql://") {
		mc, err = fromURL(source)
	} else {
		mc, err = mysql.ParseDSN(source)
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: invalid connection source: %w", err)
	}
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.ClientFoundRows = true
	return mc, nil
}

func fromURL(source string) (*mysql.Config, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = u.Host
	if u.Port() == "" {
		mc.Addr = u.Host + ":3306"
	}
	mc.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		mc.User = u.User.Username()
		mc.Passwd, _ = u.User.Password()
	}
	if params := u.Query(); len(params) > 0 {
		mc.Params = make(map[string]string, len(params))
		for k := range params {
			mc.Params[k] = params.Get(k)
		}
	}
	return mc, nil
}

func (d *driver) Close(conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("mysql: invalid connection type, expected *sql.DB")
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("mysql: failed to close connection: %w", err)
	}
	return nil
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("mysql: invalid connection type, expected *sql.DB")
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql: ping failed: %w", err)
	}
	return nil
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
