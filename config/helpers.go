package config

import (
	"time"

	"github.com/spf13/viper"
)

// orDefault reads key with get when it is set, otherwise returns defaultValue
func orDefault[T any](v *viper.Viper, key string, get func(string) T, defaultValue T) T {
	if v.IsSet(key) {
		return get(key)
	}
	return defaultValue
}

// getDurationOrDefault returns duration from config or default value
func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	return orDefault(v, key, v.GetDuration, defaultValue)
}

// getIntOrDefault returns int from config or default value
func getIntOrDefault(v *viper.Viper, key string, defaultValue int) int {
	return orDefault(v, key, v.GetInt, defaultValue)
}

// getFloat64OrDefault returns float64 from config or default value
func getFloat64OrDefault(v *viper.Viper, key string, defaultValue float64) float64 {
	return orDefault(v, key, v.GetFloat64, defaultValue)
}

// getStringOrDefault returns a non-empty string from config or default value
func getStringOrDefault(v *viper.Viper, key string, defaultValue string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return defaultValue
}

// getBoolOrDefault returns bool from config or default value
func getBoolOrDefault(v *viper.Viper, key string, defaultValue bool) bool {
	return orDefault(v, key, v.GetBool, defaultValue)
}
