package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Database database config struct
type Database struct {
	Master  *DBNode `json:"master" yaml:"master"`
	Migrate bool    `json:"migrate" yaml:"migrate"`
}

// DBNode represents a single database node configuration
type DBNode struct {
	Driver          string        `json:"driver" yaml:"driver" validate:"omitempty,oneof=postgres mysql sqlite"`
	Source          string        `json:"source" yaml:"source"`
	Logging         bool          `json:"logging" yaml:"logging"`
	MaxIdleConn     int           `json:"max_idle_conn" yaml:"max_idle_conn" validate:"gte=0"`
	MaxOpenConn     int           `json:"max_open_conn" yaml:"max_open_conn" validate:"gte=0"`
	ConnMaxLifeTime time.Duration `json:"conn_max_life_time" yaml:"conn_max_life_time"`
}

// Enabled reports whether a SQL store is configured
func (n *DBNode) Enabled() bool {
	return n != nil && n.Source != ""
}

// getDatabaseConfig reads database configurations
func getDatabaseConfig(v *viper.Viper) *Database {
	return &Database{
		Master:  getMasterConfig(v),
		Migrate: getBoolOrDefault(v, "data.database.migrate", true),
	}
}

// getMasterConfig reads master database configurations
func getMasterConfig(v *viper.Viper) *DBNode {
	source := v.GetString("data.database.master.source")
	driver := v.GetString("data.database.master.driver")
	if driver == "" {
		driver = InferDriver(source)
	}
	return &DBNode{
		Driver:          driver,
		Source:          source,
		Logging:         v.GetBool("data.database.master.logging"),
		MaxIdleConn:     v.GetInt("data.database.master.max_idle_conn"),
		MaxOpenConn:     v.GetInt("data.database.master.max_open_conn"),
		ConnMaxLifeTime: v.GetDuration("data.database.master.max_life_time"),
	}
}

// InferDriver guesses the driver name from a connection source such as a
// DATABASE_URL. It returns an empty string when nothing matches.
func InferDriver(source string) string {
	s := strings.ToLower(strings.TrimSpace(source))
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "postgres://"), strings.HasPrefix(s, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(s, "mysql://"), strings.Contains(s, "@tcp("):
		return "mysql"
	case strings.HasPrefix(s, "file:"), strings.HasPrefix(s, "sqlite://"), s == ":memory:",
		strings.HasSuffix(s, ".db"), strings.HasSuffix(s, ".sqlite"), strings.HasSuffix(s, ".sqlite3"):
		return "sqlite"
	}
	return ""
}

// getBoolOrDefault returns bool from config or default value
func getBoolOrDefault(v *viper.Viper, key string, defaultValue bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return defaultValue
}
