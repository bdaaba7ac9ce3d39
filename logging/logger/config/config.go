package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level           int              `json:"level" yaml:"level" validate:"gte=0,lte=6"`
	Format          string           `json:"format" yaml:"format" validate:"omitempty,oneof=json text"`
	Output          string           `json:"output" yaml:"output" validate:"omitempty,oneof=stdout stderr file"`
	OutputFile      string           `json:"output_file" yaml:"output_file" validate:"required_if=Output file"`
	IndexName       string           `json:"index_name" yaml:"index_name"`
	Silent          bool             `json:"silent" yaml:"silent"`
	Desensitization *Desensitization `json:"desensitization" yaml:"desensitization"`
	Elasticsearch   *Elasticsearch   `json:"elasticsearch" yaml:"elasticsearch"`
}

// defaultLevel is logrus.InfoLevel
const defaultLevel = 4

// GetConfig returns the logger configuration.
// Production defaults to JSON output, other run modes to text; the test run
// mode discards output unless logger.silent is explicitly false.
func GetConfig(v *viper.Viper) *Config {
	runMode := strings.ToLower(v.GetString("run_mode"))

	indexName := strings.ToLower(v.GetString("app_name") + "-" + runMode + "-log")
	if name := v.GetString("logger.index_name"); name != "" {
		indexName = name
	}

	format := v.GetString("logger.format")
	if format == "" {
		format = "text"
		if runMode == "production" {
			format = "json"
		}
	}

	output := v.GetString("logger.output")
	if output == "" {
		output = "stdout"
	}

	level := defaultLevel
	if v.IsSet("logger.level") {
		level = v.GetInt("logger.level")
	}

	silent := runMode == "test"
	if v.IsSet("logger.silent") {
		silent = v.GetBool("logger.silent")
	}

	return &Config{
		Level:           level,
		Format:          format,
		Output:          output,
		OutputFile:      v.GetString("logger.output_file"),
		IndexName:       indexName,
		Silent:          silent,
		Desensitization: getDesensitizationConfigs(v),
		Elasticsearch:   getElasticsearchConfigs(v),
	}
}

// BuildIndexName returns the daily index the log entry belongs to
func (c *Config) BuildIndexName(t time.Time) string {
	base := c.IndexName
	if base == "" {
		base = "example-log"
	}
	return base + "-" + t.UTC().Format("2006.01.02")
}
