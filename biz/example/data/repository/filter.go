package repository

import (
	"strings"

	"github.com/ncobase/example-api/biz/example/structs"
)

// ApplyFilter narrows items by status, search, from and to, in that order.
// The returned slice is new; items are shared, not copied.
func ApplyFilter(items []*structs.Example, filter *structs.Filter) []*structs.Example {
	out := make([]*structs.Example, 0, len(items))
	for _, item := range items {
		if Matches(item, filter) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether a single example passes filter
func Matches(item *structs.Example, filter *structs.Filter) bool {
	if filter == nil {
		return true
	}
	if filter.Status != nil && *filter.Status != "" && item.Status != *filter.Status {
		return false
	}
	if filter.Search != nil && *filter.Search != "" && !matchesSearch(item, *filter.Search) {
		return false
	}
	if filter.From != nil && item.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && item.CreatedAt.After(*filter.To) {
		return false
	}
	return true
}

// matchesSearch is a case-insensitive substring match on name or description
func matchesSearch(item *structs.Example, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(item.Name), needle) {
		return true
	}
	return item.Description != nil && strings.Contains(strings.ToLower(*item.Description), needle)
}
