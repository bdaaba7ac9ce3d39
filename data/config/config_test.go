package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestInferDriver(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"postgres://u:p@localhost:5432/db", "postgres"},
		{"postgresql://localhost/db", "postgres"},
		{"user:pass@tcp(127.0.0.1:3306)/db", "mysql"},
		{"file:example.db?cache=shared", "sqlite"},
		{":memory:", "sqlite"},
		{"data/example.sqlite3", "sqlite"},
		{"something-else", ""},
	}
	for _, tt := range tests {
		if got := InferDriver(tt.in); got != tt.want {
			t.Errorf("InferDriver(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetConfigDefaults(t *testing.T) {
	v := viper.New()
	cfg := GetConfig(v)

	if cfg.Database.Master.Enabled() {
		t.Errorf("empty source should disable the SQL store")
	}
	if !cfg.Database.Migrate {
		t.Errorf("migrate should default to true")
	}
	if cfg.Redis.Enabled() {
		t.Errorf("redis should be disabled without addr")
	}
	if cfg.Cache.TTL != 5*time.Minute || cfg.Cache.KeyPrefix != "example" {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
}

func TestGetConfigInfersDriver(t *testing.T) {
	v := viper.New()
	v.Set("data.database.master.source", "postgres://localhost/example")
	cfg := GetConfig(v)
	if cfg.Database.Master.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Database.Master.Driver)
	}
}
