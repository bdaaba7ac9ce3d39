package repository

import (
	"testing"
	"time"

	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/utils/convert"
	"github.com/stretchr/testify/assert"
)

func fixture() []*structs.Example {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*structs.Example{
		{ID: "a", Name: "Alpha Widget", Description: convert.ToPointer("first"), Status: "active", CreatedAt: base},
		{ID: "b", Name: "Beta", Description: nil, Status: "inactive", CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "c", Name: "Gamma", Description: convert.ToPointer("has a WIDGET inside"), Status: "active", CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "d", Name: "Delta", Description: nil, Status: "active", CreatedAt: base.AddDate(0, 0, 3)},
	}
}

func ids(items []*structs.Example) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.ID
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	day := func(d int) *time.Time {
		v := time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name   string
		filter *structs.Filter
		want   []string
	}{
		{"nil filter", nil, []string{"a", "b", "c", "d"}},
		{"empty filter", &structs.Filter{}, []string{"a", "b", "c", "d"}},
		{"status", &structs.Filter{Status: convert.ToPointer("active")}, []string{"a", "c", "d"}},
		{"empty status is ignored", &structs.Filter{Status: convert.ToPointer("")}, []string{"a", "b", "c", "d"}},
		{"search name or description ignoring case", &structs.Filter{Search: convert.ToPointer("widget")}, []string{"a", "c"}},
		{"search skips null descriptions", &structs.Filter{Search: convert.ToPointer("inside")}, []string{"c"}},
		{"from is inclusive", &structs.Filter{From: day(2)}, []string{"b", "c", "d"}},
		{"to is inclusive", &structs.Filter{To: day(2)}, []string{"a", "b"}},
		{"range", &structs.Filter{From: day(2), To: day(3)}, []string{"b", "c"}},
		{"combined", &structs.Filter{Status: convert.ToPointer("active"), Search: convert.ToPointer("WIDGET"), From: day(2)}, []string{"c"}},
		{"no match", &structs.Filter{Search: convert.ToPointer("zzz")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := fixture()
			got := ApplyFilter(items, tt.filter)
			assert.Equal(t, tt.want, ids(got))
			assert.Len(t, items, 4)
		})
	}
}
