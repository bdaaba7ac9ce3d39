package config

import (
	"time"

	"github.com/spf13/viper"
)

// Server http server config struct
type Server struct {
	Host            string        `json:"host" yaml:"host"`
	Port            int           `json:"port" yaml:"port" validate:"gte=1,lte=65535"`
	Prefix          string        `json:"prefix" yaml:"prefix" validate:"omitempty,startswith=/"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	Cors            *Cors         `json:"cors" yaml:"cors"`
}

// Cors cross-origin settings
type Cors struct {
	AllowOrigins     []string      `json:"allow_origins" yaml:"allow_origins"`
	AllowMethods     []string      `json:"allow_methods" yaml:"allow_methods"`
	AllowHeaders     []string      `json:"allow_headers" yaml:"allow_headers"`
	ExposeHeaders    []string      `json:"expose_headers" yaml:"expose_headers"`
	AllowCredentials bool          `json:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           time.Duration `json:"max_age" yaml:"max_age"`
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host:            getStringOrDefault(v, "server.host", "0.0.0.0"),
		Port:            getIntOrDefault(v, "server.port", 3000),
		Prefix:          getStringOrDefault(v, "server.prefix", "/api"),
		ReadTimeout:     getDurationOrDefault(v, "server.read_timeout", 15*time.Second),
		WriteTimeout:    getDurationOrDefault(v, "server.write_timeout", 15*time.Second),
		IdleTimeout:     getDurationOrDefault(v, "server.idle_timeout", 60*time.Second),
		ShutdownTimeout: getDurationOrDefault(v, "server.shutdown_timeout", 30*time.Second),
		Cors:            getCorsConfig(v),
	}
}

func getCorsConfig(v *viper.Viper) *Cors {
	c := &Cors{
		AllowOrigins:     v.GetStringSlice("server.cors.allow_origins"),
		AllowMethods:     v.GetStringSlice("server.cors.allow_methods"),
		AllowHeaders:     v.GetStringSlice("server.cors.allow_headers"),
		ExposeHeaders:    v.GetStringSlice("server.cors.expose_headers"),
		AllowCredentials: v.GetBool("server.cors.allow_credentials"),
		MaxAge:           getDurationOrDefault(v, "server.cors.max_age", 12*time.Hour),
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"*"}
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.AllowHeaders) == 0 {
		c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Trace-Id"}
	}
	if len(c.ExposeHeaders) == 0 {
		c.ExposeHeaders = []string{"X-Trace-Id", "X-Total-Count"}
	}
	return c
}
