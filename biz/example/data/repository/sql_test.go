package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/data"
	dc "github.com/ncobase/example-api/data/config"
	"github.com/ncobase/example-api/utils/convert"
	"github.com/ncobase/example-api/utils/nanoid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncobase/example-api/data/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	d, err := data.GetDatabaseDriver("sqlite")
	require.NoError(t, err)
	conn, err := d.Connect(context.Background(), &dc.DBNode{Driver: "sqlite", Source: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { d.Close(conn) })
	return conn.(*sql.DB)
}

func newSQLiteRepo(t *testing.T, opts ...SQLOption) *SQLExampleRepository {
	t.Helper()
	db := openSQLite(t)

	r, err := NewSQLExampleRepository(db, "sqlite", opts...)
	require.NoError(t, err)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func TestNewSQLExampleRepositoryRejectsBadInput(t *testing.T) {
	_, err := NewSQLExampleRepository(nil, "sqlite")
	assert.Error(t, err)

	_, err = NewSQLExampleRepository(openSQLite(t), "oracle")
	assert.Error(t, err)
}

func TestSQLiteMigrateIsIdempotent(t *testing.T) {
	r := newSQLiteRepo(t)
	assert.NoError(t, r.Migrate(context.Background()))
	assert.NoError(t, r.Ping(context.Background()))
}

func TestSQLiteCRUD(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := newSQLiteRepo(t, WithClock(clock.now))

	created, err := r.Create(ctx, &structs.CreateExampleRequest{Name: "Widget", Description: convert.ToPointer("")})
	require.NoError(t, err)
	assert.True(t, nanoid.IsPrimaryKey(created.ID))
	assert.Equal(t, structs.StatusActive, created.Status)
	assert.Nil(t, created.Description)

	found, ok, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.Name, found.Name)
	assert.Nil(t, found.Description)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))

	exists, err := r.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	updated, ok, err := r.Update(ctx, created.ID, &structs.UpdateExampleRequest{
		Description: convert.ToPointer("now described"),
		Status:      convert.ToPointer(structs.StatusInactive),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "now described", *updated.Description)
	assert.Equal(t, structs.StatusInactive, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, ok, err = r.Update(ctx, "missing", &structs.UpdateExampleRequest{Name: convert.ToPointer("x")})
	require.NoError(t, err)
	assert.False(t, ok)

	deleted, err := r.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = r.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, ok, err = r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	seq := 0
	r := newSQLiteRepo(t, WithClock(func() time.Time { return clock.now().Add(time.Hour * 24 * time.Duration(seq)) }),
		WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%02d", seq) }))

	seed := []structs.CreateExampleRequest{
		{Name: "Alpha Widget", Description: convert.ToPointer("first")},
		{Name: "Beta", Status: convert.ToPointer(structs.StatusInactive)},
		{Name: "Gamma", Description: convert.ToPointer("has a WIDGET inside")},
		{Name: "Delta 50% off"},
		{Name: "Epsilon 500"},
	}
	for i := range seed {
		_, err := r.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	items, total, err := r.List(ctx, nil, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"id-01", "id-02"}, ids(items))

	items, total, err = r.List(ctx, nil, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"id-05"}, ids(items))

	items, total, err = r.List(ctx, nil, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, items)

	items, _, err = r.List(ctx, &structs.Filter{Search: convert.ToPointer("widget")}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-01", "id-03"}, ids(items))

	// wildcards in the search term are literal
	items, _, err = r.List(ctx, &structs.Filter{Search: convert.ToPointer("50%")}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-04"}, ids(items))

	items, total, err = r.List(ctx, &structs.Filter{Status: convert.ToPointer(structs.StatusActive)}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.NotContains(t, ids(items), "id-02")

	all, err := r.FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 5)

	from, to := all[1].CreatedAt, all[3].CreatedAt
	items, total, err = r.List(ctx, &structs.Filter{From: &from, To: &to}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"id-02", "id-03", "id-04"}, ids(items))
}

func TestSQLiteSearchFoldsUnicode(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)

	for _, name := range []string{"École normale", "Straße", "plain"} {
		_, err := r.Create(ctx, &structs.CreateExampleRequest{Name: name})
		require.NoError(t, err)
	}

	for _, term := range []string{"é", "ÉCOLE", "STRAßE"} {
		t.Run(term, func(t *testing.T) {
			filter := &structs.Filter{Search: convert.ToPointer(term)}
			items, total, err := r.List(ctx, filter, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			require.Len(t, items, 1)
			assert.True(t, Matches(items[0], filter))
		})
	}
}
