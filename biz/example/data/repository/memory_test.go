package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/utils/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newMemoryRepo() (*MemoryExampleRepository, *stepClock) {
	clock := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewMemoryExampleRepository()
	r.now = clock.now
	return r, clock
}

func TestMemoryCreate(t *testing.T) {
	ctx := context.Background()
	r, _ := newMemoryRepo()

	first, err := r.Create(ctx, &structs.CreateExampleRequest{Name: "First", Description: convert.ToPointer("")})
	require.NoError(t, err)
	assert.Equal(t, "example-1", first.ID)
	assert.Equal(t, structs.StatusActive, first.Status)
	assert.Nil(t, first.Description)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second, err := r.Create(ctx, &structs.CreateExampleRequest{
		Name:        "Second",
		Description: convert.ToPointer("text"),
		Status:      convert.ToPointer(structs.StatusInactive),
	})
	require.NoError(t, err)
	assert.Equal(t, "example-2", second.ID)
	assert.Equal(t, structs.StatusInactive, second.Status)
	assert.Equal(t, "text", *second.Description)
}

func TestMemoryIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	r, _ := newMemoryRepo()

	first, _ := r.Create(ctx, &structs.CreateExampleRequest{Name: "one"})
	deleted, err := r.Delete(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	next, _ := r.Create(ctx, &structs.CreateExampleRequest{Name: "two"})
	assert.Equal(t, "example-2", next.ID)
}

func TestMemoryFindByID(t *testing.T) {
	ctx := context.Background()
	r, _ := newMemoryRepo()
	created, _ := r.Create(ctx, &structs.CreateExampleRequest{Name: "Find me", Description: convert.ToPointer("d")})

	found, ok, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created, found)

	// callers get copies
	*found.Description = "changed"
	again, _, _ := r.FindByID(ctx, created.ID)
	assert.Equal(t, "d", *again.Description)

	missing, ok, err := r.FindByID(ctx, "example-404")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, missing)
}

func TestMemoryUpdateMergesPresentFields(t *testing.T) {
	ctx := context.Background()
	r, _ := newMemoryRepo()
	created, _ := r.Create(ctx, &structs.CreateExampleRequest{Name: "Original", Description: convert.ToPointer("keep me")})

	updated, ok, err := r.Update(ctx, created.ID, &structs.UpdateExampleRequest{Status: convert.ToPointer(structs.StatusInactive)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Original", updated.Name)
	assert.Equal(t, "keep me", *updated.Description)
	assert.Equal(t, structs.StatusInactive, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	cleared, _, _ := r.Update(ctx, created.ID, &structs.UpdateExampleRequest{Description: convert.ToPointer("")})
	assert.Nil(t, cleared.Description)

	touched, _, _ := r.Update(ctx, created.ID, &structs.UpdateExampleRequest{})
	assert.True(t, touched.UpdatedAt.After(cleared.UpdatedAt))

	_, ok, err = r.Update(ctx, "example-404", &structs.UpdateExampleRequest{Name: convert.ToPointer("x")})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, _ := newMemoryRepo()
	created, _ := r.Create(ctx, &structs.CreateExampleRequest{Name: "Gone"})

	deleted, err := r.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	exists, err := r.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryListAndFindAll(t *testing.T) {
	ctx := context.Background()
	r, _ := newMemoryRepo()
	for i := 1; i <= 25; i++ {
		status := structs.StatusActive
		if i%5 == 0 {
			status = structs.StatusInactive
		}
		_, err := r.Create(ctx, &structs.CreateExampleRequest{Name: fmt.Sprintf("item %02d", i), Status: &status})
		require.NoError(t, err)
	}

	all, err := r.FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 25)
	assert.Equal(t, "example-1", all[0].ID)
	assert.Equal(t, "example-25", all[24].ID)

	page, total, err := r.List(ctx, nil, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Equal(t, []string{"example-21", "example-22", "example-23", "example-24", "example-25"}, ids(page))

	page, total, err = r.List(ctx, &structs.Filter{Status: convert.ToPointer(structs.StatusInactive)}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 5)

	page, total, err = r.List(ctx, nil, 990, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, page)
	assert.NotNil(t, page)
}

func TestMemoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryExampleRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Create(ctx, &structs.CreateExampleRequest{Name: "concurrent"})
		}()
	}
	wg.Wait()

	all, err := r.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 50)

	seen := map[string]bool{}
	for _, e := range all {
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}
