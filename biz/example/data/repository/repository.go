// Package repository stores examples.
package repository

import (
	"context"

	"github.com/ncobase/example-api/biz/example/structs"
)

// ExampleRepository is implemented by every example store.
// A missing record is reported through the bool result, never as an error.
type ExampleRepository interface {
	Create(ctx context.Context, body *structs.CreateExampleRequest) (*structs.Example, error)
	FindByID(ctx context.Context, id string) (*structs.Example, bool, error)
	// FindAll returns every example matching filter in store order
	FindAll(ctx context.Context, filter *structs.Filter) ([]*structs.Example, error)
	// List returns one window of the filtered examples and the filtered total
	List(ctx context.Context, filter *structs.Filter, offset, limit int) ([]*structs.Example, int, error)
	Update(ctx context.Context, id string, patch *structs.UpdateExampleRequest) (*structs.Example, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}
