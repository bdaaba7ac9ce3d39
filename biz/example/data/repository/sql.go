package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/utils/convert"
	"github.com/ncobase/example-api/utils/nanoid"
)

const exampleColumns = "id, name, description, status, created_at, updated_at"

// likeEscape escapes LIKE wildcards in search terms
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// SQLExampleRepository stores examples in the examples table
type SQLExampleRepository struct {
	db      *sql.DB
	dialect string
	newID   func() string
	now     func() time.Time
}

// SQLOption customizes a SQLExampleRepository
type SQLOption func(*SQLExampleRepository)

// WithIDGenerator replaces the nanoid primary key generator
func WithIDGenerator(fn func() string) SQLOption {
	return func(r *SQLExampleRepository) { r.newID = fn }
}

// WithClock replaces time.Now
func WithClock(fn func() time.Time) SQLOption {
	return func(r *SQLExampleRepository) { r.now = fn }
}

// NewSQLExampleRepository creates a store on db. dialect is the data driver
// name: postgres, mysql or sqlite.
func NewSQLExampleRepository(db *sql.DB, dialect string, opts ...SQLOption) (*SQLExampleRepository, error) {
	if db == nil {
		return nil, errors.New("database is nil")
	}
	switch dialect {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	r := &SQLExampleRepository{
		db:      db,
		dialect: dialect,
		newID:   nanoid.PrimaryKey(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Migrate creates the examples table and its indexes if they are missing
func (r *SQLExampleRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schema(r.dialect) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate examples: %w", err)
		}
	}
	return nil
}

func schema(dialect string) []string {
	switch dialect {
	case "mysql":
		return []string{`
		CREATE TABLE IF NOT EXISTS examples (
			id VARCHAR(32) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(500) NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'active',
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL,
			INDEX idx_examples_status (status),
			INDEX idx_examples_created_at (created_at, id)
		)`}
	default:
		timestamp := "TIMESTAMPTZ"
		if dialect == "sqlite" {
			timestamp = "TIMESTAMP"
		}
		return []string{
			`
		CREATE TABLE IF NOT EXISTS examples (
			id VARCHAR(32) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(500) NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'active',
			created_at ` + timestamp + ` NOT NULL,
			updated_at ` + timestamp + ` NOT NULL
		)`,
			`CREATE INDEX IF NOT EXISTS idx_examples_status ON examples(status)`,
			`CREATE INDEX IF NOT EXISTS idx_examples_created_at ON examples(created_at, id)`,
		}
	}
}

// placeholder returns the n-th bind parameter
func (r *SQLExampleRepository) placeholder(n int) string {
	if r.dialect == "postgres" {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (r *SQLExampleRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *SQLExampleRepository) Create(ctx context.Context, body *structs.CreateExampleRequest) (*structs.Example, error) {
	now := r.timestamp()
	example := &structs.Example{
		ID:          r.newID(),
		Name:        body.Name,
		Description: convert.NilIfEmpty(convert.ToValue(body.Description)),
		Status:      structs.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if body.Status != nil && *body.Status != "" {
		example.Status = *body.Status
	}

	query := fmt.Sprintf(
		"INSERT INTO examples (%s) VALUES (%s, %s, %s, %s, %s, %s)", exampleColumns,
		r.placeholder(1), r.placeholder(2), r.placeholder(3), r.placeholder(4), r.placeholder(5), r.placeholder(6),
	)
	if _, err := r.db.ExecContext(ctx, query,
		example.ID, example.Name, example.Description, example.Status, example.CreatedAt, example.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to create example: %w", err)
	}
	return example, nil
}

func (r *SQLExampleRepository) FindByID(ctx context.Context, id string) (*structs.Example, bool, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM examples WHERE id = %s", exampleColumns, r.placeholder(1)), id)

	example, err := scanExample(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find example: %w", err)
	}
	return example, true, nil
}

// where compiles filter into a WHERE clause whose placeholders start at argPos
func (r *SQLExampleRepository) where(filter *structs.Filter, argPos int) (string, []any, int) {
	if filter == nil {
		return "", nil, argPos
	}

	var clauses []string
	var args []any

	if filter.Status != nil && *filter.Status != "" {
		clauses = append(clauses, "status = "+r.placeholder(argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + likeReplacer.Replace(strings.ToLower(*filter.Search)) + "%"
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(name) LIKE %s ESCAPE '%s' OR LOWER(description) LIKE %s ESCAPE '%s')",
			r.placeholder(argPos), likeEscape, r.placeholder(argPos+1), likeEscape,
		))
		args = append(args, pattern, pattern)
		argPos += 2
	}
	if filter.From != nil {
		clauses = append(clauses, "created_at >= "+r.placeholder(argPos))
		args = append(args, filter.From.UTC())
		argPos++
	}
	if filter.To != nil {
		clauses = append(clauses, "created_at <= "+r.placeholder(argPos))
		args = append(args, filter.To.UTC())
		argPos++
	}

	if len(clauses) == 0 {
		return "", nil, argPos
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, argPos
}

func (r *SQLExampleRepository) FindAll(ctx context.Context, filter *structs.Filter) ([]*structs.Example, error) {
	where, args, _ := r.where(filter, 1)
	query := fmt.Sprintf("SELECT %s FROM examples%s ORDER BY created_at ASC, id ASC", exampleColumns, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	defer rows.Close()

	return scanExamples(rows)
}

func (r *SQLExampleRepository) List(ctx context.Context, filter *structs.Filter, offset, limit int) ([]*structs.Example, int, error) {
	where, args, argPos := r.where(filter, 1)

	var (
		items []*structs.Example
		total int
	)
	err := r.readTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM examples"+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count examples: %w", err)
		}
		if limit < 1 || offset < 0 || offset >= total {
			items = make([]*structs.Example, 0)
			return nil
		}

		query := fmt.Sprintf(
			"SELECT %s FROM examples%s ORDER BY created_at ASC, id ASC LIMIT %s OFFSET %s",
			exampleColumns, where, r.placeholder(argPos), r.placeholder(argPos+1),
		)
		rows, err := tx.QueryContext(ctx, query, append(args, limit, offset)...)
		if err != nil {
			return fmt.Errorf("failed to list examples: %w", err)
		}
		defer rows.Close()

		items, err = scanExamples(rows)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// readTx runs fn in a read-only transaction so the count and the page it
// windows see the same snapshot. SQLite transactions are serializable
// already and take no options.
func (r *SQLExampleRepository) readTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var opts *sql.TxOptions
	if r.dialect != "sqlite" {
		opts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit read transaction: %w", err)
	}
	return nil
}

func (r *SQLExampleRepository) Update(ctx context.Context, id string, patch *structs.UpdateExampleRequest) (*structs.Example, bool, error) {
	var sets []string
	var args []any
	argPos := 1

	if patch != nil {
		if patch.Name != nil {
			sets = append(sets, "name = "+r.placeholder(argPos))
			args = append(args, *patch.Name)
			argPos++
		}
		if patch.Description != nil {
			sets = append(sets, "description = "+r.placeholder(argPos))
			args = append(args, convert.NilIfEmpty(*patch.Description))
			argPos++
		}
		if patch.Status != nil && *patch.Status != "" {
			sets = append(sets, "status = "+r.placeholder(argPos))
			args = append(args, *patch.Status)
			argPos++
		}
	}
	sets = append(sets, "updated_at = "+r.placeholder(argPos))
	args = append(args, r.timestamp(), id)

	query := fmt.Sprintf("UPDATE examples SET %s WHERE id = %s", strings.Join(sets, ", "), r.placeholder(argPos+1))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update example: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to update example: %w", err)
	}
	if affected == 0 {
		return nil, false, nil
	}

	return r.FindByID(ctx, id)
}

func (r *SQLExampleRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM examples WHERE id = "+r.placeholder(1), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete example: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete example: %w", err)
	}
	return affected > 0, nil
}

func (r *SQLExampleRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM examples WHERE id = "+r.placeholder(1), id).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check example: %w", err)
	}
	return n > 0, nil
}

func (r *SQLExampleRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanExample(scanner interface{ Scan(dest ...any) error }) (*structs.Example, error) {
	var description sql.NullString
	item := &structs.Example{}
	if err := scanner.Scan(
		&item.ID,
		&item.Name,
		&description,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		item.Description = &description.String
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()

	return item, nil
}

func scanExamples(rows *sql.Rows) ([]*structs.Example, error) {
	examples := make([]*structs.Example, 0)
	for rows.Next() {
		example, err := scanExample(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		examples = append(examples, example)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return examples, nil
}
