package convert

import (
	"encoding/json"
	"testing"
	"time"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in      any
		want    int
		wantErr bool
	}{
		{3, 3, false},
		{int64(7), 7, false},
		{float64(2), 2, false},
		{2.5, 0, true},
		{"12", 12, false},
		{" 4 ", 4, false},
		{"3.0", 3, false},
		{"abc", 0, true},
		{"", 0, true},
		{json.Number("9"), 9, false},
		{true, 0, true},
		{nil, 0, true},
	}
	for _, tt := range tests {
		got, err := ToInt(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ToInt(%#v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ToInt(%#v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToString(t *testing.T) {
	if ToString(nil) != "" {
		t.Errorf("nil should be empty")
	}
	if ToString(1.5) != "1.5" {
		t.Errorf("float = %q", ToString(1.5))
	}
	if ToString(json.Number("10")) != "10" {
		t.Errorf("json number = %q", ToString(json.Number("10")))
	}
}

func TestParseISOTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:20:30Z", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"2024-03-01T10:20:30", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"2024-03-01T12:00:00+02:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseISOTime(tt.in)
		if err != nil {
			t.Fatalf("ParseISOTime(%q) error: %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseISOTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseISOTime("yesterday"); err == nil {
		t.Errorf("expected error for non-date input")
	}
}

func TestPointers(t *testing.T) {
	if NilIfEmpty("") != nil {
		t.Errorf("empty string should map to nil")
	}
	if p := NilIfEmpty("x"); p == nil || *p != "x" {
		t.Errorf("NilIfEmpty(x) = %v", p)
	}
	if ToValue[string](nil) != "" {
		t.Errorf("ToValue(nil) should be zero")
	}
	if *ToPointer(5) != 5 {
		t.Errorf("ToPointer mismatch")
	}
}
