package paging

import (
	"fmt"
	"math"
)

const (
	DefaultPage = 1
	DefaultSize = 10
)

// Params holds the page-based pagination parameters
type Params struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// NormalizeParams replaces non-positive values with the defaults
func NormalizeParams(params Params) Params {
	if params.Page < 1 {
		params.Page = DefaultPage
	}
	if params.Size < 1 {
		params.Size = DefaultSize
	}
	return params
}

// Offset returns the index of the first item on the page. It saturates at
// math.MaxInt so a huge page lands past the end instead of wrapping.
func (p Params) Offset() int {
	if p.Page < 1 || p.Size < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Size
}

// Cursor points at a neighbouring page
type Cursor struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Pagination describes where a page sits in the full result set
type Pagination struct {
	CurrentPage int     `json:"current_page"`
	Size        int     `json:"size"`
	Total       int     `json:"total"`
	Next        *Cursor `json:"next,omitempty"`
	Previous    *Cursor `json:"previous,omitempty"`
}

// Result holds one page of items and its navigation hints
type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// TotalPages returns ceil(total / size)
func TotalPages(total, size int) int {
	if size < 1 || total < 1 {
		return 0
	}
	return (total + size - 1) / size
}

// NewResult builds the envelope for an already sliced page
func NewResult[T any](items []T, params Params, total int) *Result[T] {
	if items == nil {
		items = make([]T, 0)
	}

	p := Pagination{
		CurrentPage: params.Page,
		Size:        params.Size,
		Total:       total,
	}
	if params.Page < TotalPages(total, params.Size) {
		p.Next = &Cursor{Page: params.Page + 1, Size: params.Size}
	}
	if params.Page > 1 {
		p.Previous = &Cursor{Page: params.Page - 1, Size: params.Size}
	}

	return &Result[T]{Data: items, Pagination: p}
}

// Window returns the items of the requested page, empty when out of range
func Window[T any](items []T, params Params) []T {
	start := params.Offset()
	if start < 0 || start >= len(items) {
		return make([]T, 0)
	}
	end := start + params.Size
	if end > len(items) || end < start {
		end = len(items)
	}
	return items[start:end]
}

// PaginateSlice slices an in-memory result set into a page
func PaginateSlice[T any](items []T, params Params) *Result[T] {
	params = NormalizeParams(params)
	return NewResult(Window(items, params), params, len(items))
}

// PagingFunc loads one page of items and the total count from a backing store
type PagingFunc[T any] func(offset, limit int) (items []T, total int, err error)

// Paginate applies pagination using the provided PagingFunc
func Paginate[T any](params Params, paginateFunc PagingFunc[T]) (*Result[T], error) {
	params = NormalizeParams(params)
	items, total, err := paginateFunc(params.Offset(), params.Size)
	if err != nil {
		return nil, fmt.Errorf("pagination error: %w", err)
	}
	return NewResult(items, params, total), nil
}
