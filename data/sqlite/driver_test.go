package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ncobase/example-api/data"
	"github.com/ncobase/example-api/data/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSource(t *testing.T) {
	assert.Equal(t, "/tmp/app.db", normalizeSource("sqlite:///tmp/app.db"))
	assert.Equal(t, "file:app.db?cache=shared", normalizeSource("file:app.db?cache=shared"))
	assert.True(t, isMemory(":memory:"))
	assert.False(t, isMemory("app.db"))
}

func TestConnectInMemory(t *testing.T) {
	ctx := context.Background()
	d, err := data.GetDatabaseDriver("sqlite")
	require.NoError(t, err)

	conn, err := d.Connect(ctx, &config.DBNode{Driver: "sqlite", Source: ":memory:", MaxOpenConn: 10})
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close(conn)) }()

	db := conn.(*sql.DB)
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	_, err = db.ExecContext(ctx, "CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO t VALUES (1)")
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 1, n)
	assert.NoError(t, d.Ping(ctx, conn))
}

func TestLowerFoldsUnicode(t *testing.T) {
	ctx := context.Background()
	d, err := data.GetDatabaseDriver("sqlite")
	require.NoError(t, err)

	conn, err := d.Connect(ctx, &config.DBNode{Driver: "sqlite", Source: ":memory:"})
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close(conn)) }()

	db := conn.(*sql.DB)
	var lower, upper string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT LOWER('ÉCOLE Ünïcode'), UPPER('straße')").Scan(&lower, &upper))
	assert.Equal(t, "école ünïcode", lower)
	assert.Equal(t, "STRASSE", upper)

	var matched bool
	require.NoError(t, db.QueryRowContext(ctx, "SELECT LOWER('Élan') LIKE '%é%'").Scan(&matched))
	assert.True(t, matched)
}
