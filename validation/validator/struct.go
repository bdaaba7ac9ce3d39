package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ncobase/example-api/utils/convert"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// errorMessages is a nested map of languages to validation tags to custom error messages.
var errorMessages = map[string]map[string]string{
	"en": {
		"required": "The field '%s' is required.",
		"min":      "The field '%s' must be at least %s characters long.",
		"max":      "The field '%s' must be no longer than %s characters.",
		"gte":      "The field '%s' must be greater than or equal to %s.",
		"lte":      "The field '%s' must be less than or equal to %s.",
		"oneof":    "The field '%s' must be one of [%s].",
		"isodate":  "The field '%s' must be an ISO-8601 date string.",
	},
	"zh": {
		"required": "字段 '%s' 为必填项。",
		"min":      "字段 '%s' 的长度不能少于 %s 个字符。",
		"max":      "字段 '%s' 的长度不能超过 %s 个字符。",
		"gte":      "字段 '%s' 的值必须大于或等于 %s。",
		"lte":      "字段 '%s' 的值必须小于或等于 %s。",
		"oneof":    "字段 '%s' 的值必须是 [%s] 之一。",
		"isodate":  "字段 '%s' 必须是 ISO-8601 日期字符串。",
	},
}

// Engine returns the shared validator instance
func Engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("isodate", isISODate)
	})
	return validate
}

// jsonName reports the json (or mapstructure) name of a struct field
func jsonName(fld reflect.StructField) string {
	for _, key := range []string{"json", "mapstructure", "form"} {
		name := strings.Split(fld.Tag.Get(key), ",")[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := convert.ParseISOTime(fl.Field().String())
	return err == nil
}

// parseMessage constructs a friendly error message based on the validation tag and custom messages.
func parseMessage(field string, e validator.FieldError, lang ...string) string {
	msgLang := "en"
	if len(lang) > 0 && lang[0] != "" {
		msgLang = lang[0]
	}
	if msgs, exists := errorMessages[msgLang]; exists {
		if msg, exists := msgs[e.Tag()]; exists {
			switch strings.Count(msg, "%s") {
			case 1:
				return fmt.Sprintf(msg, field)
			case 2:
				return fmt.Sprintf(msg, field, e.Param())
			}
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// ValidateStruct validates a struct and returns a map of field paths to friendly error messages.
// The map is empty when the struct is valid.
func ValidateStruct(s any, lang ...string) map[string]string {
	validationErrors := make(map[string]string)

	err := Engine().Struct(s)
	if err == nil {
		return validationErrors
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		validationErrors["_"] = err.Error()
		return validationErrors
	}

	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		validationErrors[field] = parseMessage(field, e, lang...)
	}
	return validationErrors
}

// fieldPath drops the root struct name from a namespace like "Config.server.port"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
