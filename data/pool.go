package data

import (
	"database/sql"

	"github.com/ncobase/example-api/data/config"
)

// ConfigurePool applies the node's pool limits; zero values keep the
// database/sql defaults.
func ConfigurePool(db *sql.DB, node *config.DBNode) {
	if node == nil {
		return
	}
	if node.MaxIdleConn > 0 {
		db.SetMaxIdleConns(node.MaxIdleConn)
	}
	if node.MaxOpenConn > 0 {
		db.SetMaxOpenConns(node.MaxOpenConn)
	}
	if node.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(node.ConnMaxLifeTime)
	}
}
