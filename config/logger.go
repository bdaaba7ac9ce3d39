package config

import (
	lc "github.com/ncobase/example-api/logging/logger/config"

	"github.com/spf13/viper"
)

// Logger represents the logger configuration
type Logger = lc.Config

func getLoggerConfig(v *viper.Viper) *Logger {
	return lc.GetConfig(v)
}
