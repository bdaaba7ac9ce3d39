package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/consts"
	"github.com/ncobase/example-api/utils/convert"
)

// MemoryExampleRepository keeps examples in insertion order in process memory.
// Returned examples are copies.
type MemoryExampleRepository struct {
	mu       sync.RWMutex
	examples []*structs.Example
	counter  int
	now      func() time.Time
}

func NewMemoryExampleRepository() *MemoryExampleRepository {
	return &MemoryExampleRepository{now: time.Now}
}

func (r *MemoryExampleRepository) nextID() string {
	r.counter++
	return consts.ExampleIDPrefix + strconv.Itoa(r.counter)
}

func (r *MemoryExampleRepository) Create(ctx context.Context, body *structs.CreateExampleRequest) (*structs.Example, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	example := &structs.Example{
		ID:          r.nextID(),
		Name:        body.Name,
		Description: convert.NilIfEmpty(convert.ToValue(body.Description)),
		Status:      structs.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if body.Status != nil && *body.Status != "" {
		example.Status = *body.Status
	}

	r.examples = append(r.examples, example)
	return example.Clone(), nil
}

func (r *MemoryExampleRepository) FindByID(ctx context.Context, id string) (*structs.Example, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.examples[i].Clone(), true, nil
	}
	return nil, false, nil
}

func (r *MemoryExampleRepository) FindAll(ctx context.Context, filter *structs.Filter) ([]*structs.Example, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAll(ApplyFilter(r.examples, filter)), nil
}

func (r *MemoryExampleRepository) List(ctx context.Context, filter *structs.Filter, offset, limit int) ([]*structs.Example, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := ApplyFilter(r.examples, filter)
	if limit < 1 {
		return make([]*structs.Example, 0), len(filtered), nil
	}
	return cloneAll(windowAt(filtered, offset, limit)), len(filtered), nil
}

func (r *MemoryExampleRepository) Update(ctx context.Context, id string, patch *structs.UpdateExampleRequest) (*structs.Example, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, false, nil
	}

	updated := r.examples[i].Clone()
	applyPatch(updated, patch)
	updated.UpdatedAt = r.now().UTC()
	r.examples[i] = updated

	return updated.Clone(), true, nil
}

func (r *MemoryExampleRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.examples = append(r.examples[:i], r.examples[i+1:]...)
	return true, nil
}

func (r *MemoryExampleRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOf(id) >= 0, nil
}

func (r *MemoryExampleRepository) Ping(context.Context) error { return nil }

// indexOf must be called with the lock held
func (r *MemoryExampleRepository) indexOf(id string) int {
	for i, e := range r.examples {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// applyPatch merges the present fields of patch into e
func applyPatch(e *structs.Example, patch *structs.UpdateExampleRequest) {
	if patch == nil {
		return
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Description != nil {
		e.Description = convert.NilIfEmpty(*patch.Description)
	}
	if patch.Status != nil && *patch.Status != "" {
		e.Status = *patch.Status
	}
}

func windowAt(items []*structs.Example, offset, limit int) []*structs.Example {
	if offset < 0 || offset >= len(items) {
		return make([]*structs.Example, 0)
	}
	end := offset + limit
	if end > len(items) || end < offset {
		end = len(items)
	}
	return items[offset:end]
}

func cloneAll(items []*structs.Example) []*structs.Example {
	out := make([]*structs.Example, len(items))
	for i, e := range items {
		out[i] = e.Clone()
	}
	return out
}
