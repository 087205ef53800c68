package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// DB is the subset of *pgxpool.Pool used by repositories.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Order selects a sort column and direction for list reads.
type Order struct {
	Column string
	Desc   bool
}

// Page bounds a list read.
type Page struct {
	Limit  int
	Offset int
}

func (o Order) clause(allowed map[string]bool, fallback Order) string {
	chosen := fallback
	if o.Column != "" && allowed[o.Column] {
		chosen = o
	}
	dir := "ASC"
	if chosen.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", chosen.Column, dir)
}

func (p Page) clause() string {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}

// selectQuery accumulates WHERE clauses and positional args for a list read.
type selectQuery struct {
	base    string
	clauses []string
	args    []any
}

func newSelect(base string) *selectQuery {
	return &selectQuery{base: base}
}

func (q *selectQuery) eq(column string, value any) *selectQuery {
	q.args = append(q.args, value)
	q.clauses = append(q.clauses, fmt.Sprintf("%s=$%d", column, len(q.args)))
	return q
}

// cmp adds a comparison such as "<" or ">=" against column.
func (q *selectQuery) cmp(column, op string, value any) *selectQuery {
	q.args = append(q.args, value)
	q.clauses = append(q.clauses, fmt.Sprintf("%s %s $%d", column, op, len(q.args)))
	return q
}

// notIn excludes rows whose column matches any of values; no values adds nothing.
func (q *selectQuery) notIn(column string, values ...any) *selectQuery {
	if len(values) == 0 {
		return q
	}
	holders := make([]string, len(values))
	for i, v := range values {
		q.args = append(q.args, v)
		holders[i] = fmt.Sprintf("$%d", len(q.args))
	}
	q.clauses = append(q.clauses, fmt.Sprintf("%s NOT IN (%s)", column, strings.Join(holders, ",")))
	return q
}

// search matches term case-insensitively against any of columns.
func (q *selectQuery) search(term string, columns ...string) *selectQuery {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	q.args = append(q.args, "%"+strings.ToLower(term)+"%")
	placeholder := fmt.Sprintf("$%d", len(q.args))
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE %s", col, placeholder)
	}
	q.clauses = append(q.clauses, "("+strings.Join(parts, " OR ")+")")
	return q
}

func (q *selectQuery) build(order string, page string) (string, []any) {
	query := q.base
	if len(q.clauses) > 0 {
		query += " WHERE " + strings.Join(q.clauses, " AND ")
	}
	return query + order + page, q.args
}

// updateQuery accumulates SET assignments for a partial update.
type updateQuery struct {
	table string
	key   string
	sets  []string
	args  []any
}

func newUpdate(table, key string) *updateQuery {
	return &updateQuery{table: table, key: key}
}

func (u *updateQuery) set(column string, value any) *updateQuery {
	u.args = append(u.args, value)
	u.sets = append(u.sets, fmt.Sprintf("%s=$%d", column, len(u.args)))
	return u
}

// build always stamps last_updated_at, so an empty patch still touches the row.
func (u *updateQuery) build(id string, returning string) (string, []any) {
	sets := append(append([]string{}, u.sets...), "last_updated_at=NOW()")
	args := append(append([]any{}, u.args...), id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s=$%d RETURNING %s",
		u.table, strings.Join(sets, ", "), u.key, len(args), returning)
	return query, args
}

func deleteRow(ctx context.Context, db DB, table, key, id, resource string) error {
	cmd, err := db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s=$1", table, key), id)
	if err != nil {
		return errorutil.MapError(err, resource)
	}
	if cmd.RowsAffected() == 0 {
		return errorutil.NewNotFound(resource, map[string]any{key: id})
	}
	return nil
}

// collect scans every row with scan and normalizes failures.
func collect[T any](rows pgx.Rows, resource string, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, errorutil.MapError(err, resource)
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, errorutil.MapError(err, resource)
	}
	return result, nil
}
