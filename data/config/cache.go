package config

import (
	"time"

	"github.com/spf13/viper"
)

// Cache entity cache settings
type Cache struct {
	KeyPrefix string        `json:"key_prefix" yaml:"key_prefix"`
	TTL       time.Duration `json:"ttl" yaml:"ttl"`

	// Breaker opens after this many consecutive Redis failures
	BreakerFailures uint32        `json:"breaker_failures" yaml:"breaker_failures"`
	BreakerTimeout  time.Duration `json:"breaker_timeout" yaml:"breaker_timeout"`
}

// getCacheConfig reads cache configurations
func getCacheConfig(v *viper.Viper) *Cache {
	c := &Cache{
		KeyPrefix:       v.GetString("data.cache.key_prefix"),
		TTL:             v.GetDuration("data.cache.ttl"),
		BreakerFailures: v.GetUint32("data.cache.breaker_failures"),
		BreakerTimeout:  v.GetDuration("data.cache.breaker_timeout"),
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "example"
	}
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
	return c
}
