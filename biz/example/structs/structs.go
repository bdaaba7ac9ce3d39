// Package structs defines the example domain models.
package structs

import (
	"time"

	"github.com/ncobase/example-api/paging"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Example struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy
func (e *Example) Clone() *Example {
	if e == nil {
		return nil
	}
	c := *e
	if e.Description != nil {
		d := *e.Description
		c.Description = &d
	}
	return &c
}

type CreateExampleRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateExampleRequest is a partial update; nil fields are left untouched
type UpdateExampleRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// QueryRequest carries list parameters as they arrive. Page, Size and Limit
// may be strings or numbers; Limit is a fallback for Size.
type QueryRequest struct {
	Page   any     `json:"page" form:"page"`
	Size   any     `json:"size" form:"size"`
	Limit  any     `json:"limit" form:"limit"`
	Status *string `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
	Search *string `json:"search" form:"search"`
	From   *string `json:"from" form:"from" validate:"omitempty,isodate"`
	To     *string `json:"to" form:"to" validate:"omitempty,isodate"`
}

// Filter narrows a list; nil fields do not filter
type Filter struct {
	Status *string
	Search *string
	From   *time.Time
	To     *time.Time
}

// Query is a normalized QueryRequest
type Query struct {
	Filter
	paging.Params
}

// ListResult is one page of examples
type ListResult = paging.Result[*Example]
