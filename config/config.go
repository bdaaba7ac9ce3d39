package config

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/ncobase/example-api/validation/validator"
	"github.com/spf13/viper"
)

// Run modes
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

var (
	config *Config
	path   string
	once   sync.Once
	mu     sync.Mutex
	v      *viper.Viper
)

// ErrInvalidConfig is returned when the loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the configuration implementation.
type Config struct {
	AppName  string       `json:"app_name" validate:"required"`
	RunMode  string       `json:"run_mode" validate:"oneof=development production test"`
	Server   *Server      `json:"server" validate:"required"`
	Logger   *Logger      `json:"logger" validate:"required"`
	Data     *Data        `json:"data" validate:"required"`
	Observes *Observes    `json:"observes"`
	Viper    *viper.Viper `json:"-" validate:"-"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool { return c.RunMode == Production }

// IsTest reports whether the service runs in test mode.
func (c *Config) IsTest() bool { return c.RunMode == Test }

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func init() {
	flag.StringVar(&path, "conf", "", "e.g: bin ./config.yaml")
}

// Init initializes and loads the configuration.
func Init() (cfg *Config, err error) {
	once.Do(func() {
		cfg, err = loadConfiguration()
	})
	if cfg == nil && err == nil {
		cfg = config
	}
	return cfg, err
}

// SetPath overrides the configuration file path used by Init and Reload.
func SetPath(p string) {
	mu.Lock()
	defer mu.Unlock()
	path = p
}

// GetConfig returns the configuration.
// It does not handle errors internally; instead, it returns the error for the caller to handle.
func GetConfig() (*Config, error) {
	mu.Lock()
	cfg := config
	mu.Unlock()
	if cfg != nil {
		return cfg, nil
	}
	cfg, err := Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return cfg, nil
}

type configKey struct{}

// BindConfigToContext binds the configuration to the context.
func BindConfigToContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the configuration bound to ctx, if any.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	return cfg, ok
}

// loadConfiguration loads the configuration from the file and sets it globally.
func loadConfiguration() (*Config, error) {
	if !flag.Parsed() {
		flag.Parse()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	mu.Lock()
	config = cfg
	mu.Unlock()
	return cfg, nil
}

// newViper prepares a viper instance with defaults and environment bindings.
// Nested keys map to upper-case env names with dots replaced by underscores
// (server.port -> SERVER_PORT); PORT, NODE_ENV and DATABASE_URL are accepted
// as flat aliases.
func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetDefault("app_name", "example")
	nv.SetDefault("run_mode", Development)

	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()
	_ = nv.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = nv.BindEnv("run_mode", "RUN_MODE", "NODE_ENV")
	_ = nv.BindEnv("data.database.master.source", "DATA_DATABASE_MASTER_SOURCE", "DATABASE_URL")
	_ = nv.BindEnv("data.redis.addr", "DATA_REDIS_ADDR", "REDIS_ADDR")
	return nv
}

// LoadConfig loads the configuration from the file.
// An explicit path must exist; without one the default locations are
// searched and a missing file falls back to defaults and environment.
func LoadConfig(configPath string) (*Config, error) {
	nv := newViper()

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.AddConfigPath("/etc/example")
		nv.AddConfigPath("$HOME/.example")
		nv.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			nv.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		AppName:  nv.GetString("app_name"),
		RunMode:  strings.ToLower(nv.GetString("run_mode")),
		Server:   getServerConfig(nv),
		Logger:   getLoggerConfig(nv),
		Data:     getDataConfig(nv),
		Observes: getObservesConfig(nv),
		Viper:    nv,
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	mu.Lock()
	v = nv
	mu.Unlock()

	return cfg, nil
}

// Validate checks the configuration and reports every invalid field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	errs := validator.ValidateStruct(cfg)
	if m := cfg.Data.Database.Master; m != nil && m.Source != "" && m.Driver == "" {
		errs["data.database.master.driver"] = "The field 'data.database.master.driver' is required when a source is set."
	}
	if len(errs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, errs[k])
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, " "))
}

// Reload reloads the configuration from the file.
func Reload() error {
	mu.Lock()
	p := path
	mu.Unlock()

	newConfig, err := LoadConfig(p)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	mu.Lock()
	config = newConfig
	mu.Unlock()
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	mu.Lock()
	nv := v
	mu.Unlock()
	if nv == nil || nv.ConfigFileUsed() == "" {
		return
	}

	nv.OnConfigChange(func(e fsnotify.Event) {
		if err := Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}
		cfg, _ := GetConfig()
		callback(cfg)
	})
	nv.WatchConfig()
}
