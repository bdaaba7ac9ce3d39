package validator

import (
	"strings"
	"testing"
)

type sample struct {
	Name   string  `json:"name" validate:"required,min=2,max=5"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	From   *string `json:"from,omitempty" validate:"omitempty,isodate"`
}

func strPtr(s string) *string { return &s }

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(&sample{Name: "abc", Status: strPtr("active"), From: strPtr("2024-01-01")})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateStructMessages(t *testing.T) {
	errs := ValidateStruct(&sample{Name: "a", Status: strPtr("archived"), From: strPtr("not-a-date")})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	if !strings.Contains(errs["name"], "at least 2") {
		t.Errorf("name message = %q", errs["name"])
	}
	if !strings.Contains(errs["status"], "active inactive") {
		t.Errorf("status message = %q", errs["status"])
	}
	if !strings.Contains(errs["from"], "ISO-8601") {
		t.Errorf("from message = %q", errs["from"])
	}
}

func TestValidateStructRequired(t *testing.T) {
	errs := ValidateStruct(&sample{})
	if errs["name"] != "The field 'name' is required." {
		t.Errorf("required message = %q", errs["name"])
	}
}

func TestValidateStructLanguage(t *testing.T) {
	errs := ValidateStruct(&sample{}, "zh")
	if !strings.Contains(errs["name"], "必填") {
		t.Errorf("zh message = %q", errs["name"])
	}
}

func TestValidateStructNested(t *testing.T) {
	type inner struct {
		Port int `mapstructure:"port" validate:"gte=1,lte=65535"`
	}
	type outer struct {
		Server inner `mapstructure:"server"`
	}
	errs := ValidateStruct(&outer{Server: inner{Port: 70000}})
	if _, ok := errs["server.port"]; !ok {
		t.Fatalf("expected server.port error, got %v", errs)
	}
}
