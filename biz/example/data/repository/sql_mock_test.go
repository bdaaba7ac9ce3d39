package repository

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/utils/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleRowColumns = []string{"id", "name", "description", "status", "created_at", "updated_at"}

func newMockRepo(t *testing.T, dialect string) (*SQLExampleRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r, err := NewSQLExampleRepository(db, dialect,
		WithIDGenerator(func() string { return "abc123" }),
		WithClock(func() time.Time { return fixed }),
	)
	require.NoError(t, err)
	return r, mock
}

func TestPostgresCreateUsesNumberedPlaceholders(t *testing.T) {
	r, mock := newMockRepo(t, "postgres")

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO examples (id, name, description, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
	)).WithArgs("abc123", "Widget", nil, "active", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := r.Create(context.Background(), &structs.CreateExampleRequest{Name: "Widget"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListCompilesFiltersInOrder(t *testing.T) {
	r, mock := newMockRepo(t, "postgres")
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	where := " WHERE status = $1 AND (LOWER(name) LIKE $2 ESCAPE '!' OR LOWER(description) LIKE $3 ESCAPE '!') AND created_at >= $4"
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM examples" + where)).
		WithArgs("active", "%wid!_get%", "%wid!_get%", from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, description, status, created_at, updated_at FROM examples" + where +
			" ORDER BY created_at ASC, id ASC LIMIT $5 OFFSET $6",
	)).WithArgs("active", "%wid!_get%", "%wid!_get%", from, 10, 10).
		WillReturnRows(sqlmock.NewRows(exampleRowColumns).
			AddRow("x1", "Wid_get", nil, "active", from, from))
	mock.ExpectCommit()

	items, total, err := r.List(context.Background(), &structs.Filter{
		Status: convert.ToPointer("active"),
		Search: convert.ToPointer("Wid_Get"),
		From:   &from,
	}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSkipsSelectPastTheEnd(t *testing.T) {
	for _, offset := range []int{3, 990, math.MaxInt} {
		t.Run(strconv.Itoa(offset), func(t *testing.T) {
			r, mock := newMockRepo(t, "postgres")

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM examples")).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
			mock.ExpectCommit()

			items, total, err := r.List(context.Background(), nil, offset, 10)
			require.NoError(t, err)
			assert.Equal(t, 3, total)
			assert.NotNil(t, items)
			assert.Empty(t, items)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListRollsBackOnError(t *testing.T) {
	r, mock := newMockRepo(t, "mysql")
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM examples")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, description, status, created_at, updated_at FROM examples ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?",
	)).WithArgs(2, 0).WillReturnError(boom)
	mock.ExpectRollback()

	_, _, err := r.List(context.Background(), nil, 0, 2)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFailsWhenTransactionCannotStart(t *testing.T) {
	r, mock := newMockRepo(t, "postgres")
	boom := errors.New("boom")
	mock.ExpectBegin().WillReturnError(boom)

	_, _, err := r.List(context.Background(), nil, 0, 10)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUpdateUsesQuestionMarks(t *testing.T) {
	r, mock := newMockRepo(t, "mysql")
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE examples SET name = ?, updated_at = ? WHERE id = ?")).
		WithArgs("Renamed", at, "abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, status, created_at, updated_at FROM examples WHERE id = ?")).
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows(exampleRowColumns).AddRow("abc123", "Renamed", "d", "active", at, at))

	updated, ok, err := r.Update(context.Background(), "abc123", &structs.UpdateExampleRequest{Name: convert.ToPointer("Renamed")})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "d", *updated.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingRow(t *testing.T) {
	r, mock := newMockRepo(t, "postgres")

	mock.ExpectExec(regexp.QuoteMeta("UPDATE examples SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("inactive", sqlmock.AnyArg(), "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, ok, err := r.Update(context.Background(), "nope", &structs.UpdateExampleRequest{Status: convert.ToPointer("inactive")})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	r, mock := newMockRepo(t, "postgres")
	boom := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM examples WHERE id = $1")).WithArgs("x").WillReturnError(boom)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM examples WHERE id = $1")).WithArgs("x").WillReturnError(boom)

	_, err := r.Delete(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	_, err = r.Exists(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
