package logger

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ncobase/example-api/logging/logger/config"
	"github.com/sirupsen/logrus"
)

const maxDepth = 10

// Desensitizer masks sensitive data in log fields
type Desensitizer struct {
	config   *config.Desensitization
	fields   []string
	patterns []*regexp.Regexp
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	if cfg == nil {
		cfg = config.DefaultDesensitization()
	}
	d := &Desensitizer{config: cfg}

	for _, f := range cfg.SensitiveFields {
		if n := normalizeFieldName(f); n != "" {
			d.fields = append(d.fields, n)
		}
	}

	// invalid patterns are skipped
	for _, pattern := range cfg.CustomPatterns {
		if regex, err := regexp.Compile(pattern); err == nil {
			d.patterns = append(d.patterns, regex)
		}
	}

	return d
}

// DesensitizeFields processes log fields and masks sensitive data.
// The input is never modified.
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	if d == nil || !d.config.Enabled || len(fields) == 0 {
		return fields
	}

	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.desensitizeValue(key, value, 0)
	}
	return result
}

// DeepDesensitize masks sensitive data in an arbitrary value
func (d *Desensitizer) DeepDesensitize(data any) any {
	if d == nil || !d.config.Enabled {
		return data
	}
	return d.desensitizeValue("", data, 0)
}

func (d *Desensitizer) desensitizeValue(key string, value any, depth int) any {
	if value == nil || depth > maxDepth {
		return value
	}

	if d.isSensitiveField(key) {
		return d.maskValue(value)
	}

	switch v := value.(type) {
	case string:
		return d.desensitizeString(v)
	case error:
		return d.desensitizeString(v.Error())
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = d.desensitizeValue(k, item, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = d.desensitizeValue("", item, depth+1)
		}
		return out
	default:
		return d.processViaJSON(value, depth)
	}
}

// processViaJSON flattens structs and typed containers into plain maps and slices
func (d *Desensitizer) processViaJSON(value any, depth int) any {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return value
	}

	switch generic.(type) {
	case map[string]any, []any:
		return d.desensitizeValue("", generic, depth+1)
	default:
		// scalars such as time.Time keep their original form
		return value
	}
}

// isSensitiveField matches ignoring case, underscores and dashes
func (d *Desensitizer) isSensitiveField(fieldName string) bool {
	if fieldName == "" {
		return false
	}
	name := normalizeFieldName(fieldName)

	for _, sensitive := range d.fields {
		if d.config.ExactFieldMatch {
			if name == sensitive {
				return true
			}
		} else if strings.Contains(name, sensitive) {
			return true
		}
	}
	return false
}

func (d *Desensitizer) desensitizeString(str string) string {
	if str == "" {
		return str
	}
	for _, pattern := range d.patterns {
		str = pattern.ReplaceAllString(str, d.censor())
	}
	return str
}

func (d *Desensitizer) maskValue(value any) any {
	if s, ok := value.(string); ok && s == "" {
		return s
	}
	return d.censor()
}

func (d *Desensitizer) censor() string {
	if d.config.Censor == "" {
		return config.DefaultCensor
	}
	return d.config.Censor
}

func normalizeFieldName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "", "-", "").Replace(name)
}
