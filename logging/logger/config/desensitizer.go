package config

import "github.com/spf13/viper"

// Desensitization holds desensitization settings
type Desensitization struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	SensitiveFields []string `json:"sensitive_fields" yaml:"sensitive_fields"`
	CustomPatterns  []string `json:"custom_patterns" yaml:"custom_patterns"`
	Censor          string   `json:"censor" yaml:"censor"`
	ExactFieldMatch bool     `json:"exact_field_match" yaml:"exact_field_match"`
}

// Default sensitive field names; matching ignores case and separators
var defaultSensitiveFields = []string{
	"password", "new_password", "passwd",
	"token", "access_token", "refresh_token",
	"secret", "api_key", "authorization",
}

// DefaultCensor replaces masked values
const DefaultCensor = "**REDACTED**"

// DefaultDesensitization returns the settings used when none are configured
func DefaultDesensitization() *Desensitization {
	return &Desensitization{
		Enabled:         true,
		SensitiveFields: defaultSensitiveFields,
		Censor:          DefaultCensor,
	}
}

// getDesensitizationConfigs reads and returns desensitization configuration
func getDesensitizationConfigs(v *viper.Viper) *Desensitization {
	if !v.IsSet("logger.desensitization") {
		return DefaultDesensitization()
	}

	config := &Desensitization{
		Enabled:         v.GetBool("logger.desensitization.enabled"),
		SensitiveFields: v.GetStringSlice("logger.desensitization.sensitive_fields"),
		CustomPatterns:  v.GetStringSlice("logger.desensitization.custom_patterns"),
		Censor:          v.GetString("logger.desensitization.censor"),
		ExactFieldMatch: v.GetBool("logger.desensitization.exact_field_match"),
	}
	if !v.IsSet("logger.desensitization.enabled") {
		config.Enabled = true
	}
	if len(config.SensitiveFields) == 0 {
		config.SensitiveFields = defaultSensitiveFields
	}
	if config.Censor == "" {
		config.Censor = DefaultCensor
	}

	return config
}
