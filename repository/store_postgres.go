package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"railshift/models"
)

type PostgresStore[T any] struct {
	DB    *sql.DB
	table Table[T]
}

func NewPostgresStore[T any](db *sql.DB, t Table[T]) *PostgresStore[T] {
	return &PostgresStore[T]{DB: db, table: t}
}

func (s *PostgresStore[T]) selectColumns() string {
	return "id, " + strings.Join(s.table.Columns, ", ")
}

// where builds the WHERE clause for search and whitelisted filters.
func (s *PostgresStore[T]) where(q models.ListQuery) (string, []any) {
	var conds []string
	var args []any

	if q.Search != "" && len(s.table.Search) > 0 {
		args = append(args, "%"+q.Search+"%")
		var ors []string
		for _, col := range s.table.Search {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	for _, key := range sortedKeys(q.Filters) {
		if !s.table.filterable(key) || q.Filters[key] == "" {
			continue
		}
		args = append(args, q.Filters[key])
		conds = append(conds, fmt.Sprintf("%s = $%d", key, len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *PostgresStore[T]) List(ctx context.Context, q models.ListQuery) ([]T, int64, error) {
	q = q.Normalize()
	where, args := s.where(q)

	var total int64
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.table.Name+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", s.table.Name, err)
	}

	args = append(args, q.Limit, q.Offset())
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id DESC LIMIT $%d OFFSET $%d",
		s.selectColumns(), s.table.Name, where, len(args)-1, len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: list: %w", s.table.Name, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := s.table.Scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: scan: %w", s.table.Name, err)
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

func (s *PostgresStore[T]) Get(ctx context.Context, id int64) (*T, error) {
	row := s.DB.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", s.selectColumns(), s.table.Name), id)
	item, err := s.table.Scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: get: %w", s.table.Name, err)
	}
	return item, nil
}

func (s *PostgresStore[T]) Create(ctx context.Context, item *T) error {
	s.table.stamp(item, time.Now().UTC())
	values, err := s.table.Values(item)
	if err != nil {
		return err
	}

	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		s.table.Name, strings.Join(s.table.Columns, ", "), strings.Join(placeholders, ", "))

	if err := s.DB.QueryRowContext(ctx, query, values...).Scan(s.table.ID(item)); err != nil {
		return fmt.Errorf("%s: insert: %w", s.table.Name, err)
	}
	return nil
}

// Update rewrites every column except created_at.
func (s *PostgresStore[T]) Update(ctx context.Context, item *T) error {
	s.table.touch(item, time.Now().UTC())
	values, err := s.table.Values(item)
	if err != nil {
		return err
	}

	var sets []string
	var args []any
	for i, col := range s.table.Columns {
		if col == "created_at" {
			continue
		}
		args = append(args, values[i])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, *s.table.ID(item))
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", s.table.Name, strings.Join(sets, ", "), len(args))

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: update: %w", s.table.Name, err)
	}
	return affected(res)
}

func (s *PostgresStore[T]) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM "+s.table.Name+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("%s: delete: %w", s.table.Name, err)
	}
	return affected(res)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// NewPostgresRepositories wires every store against one connection pool.
func NewPostgresRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Reasons:     NewPostgresStore(db, reasonTable),
		Locations:   NewPostgresStore(db, locationTable),
		Locomotives: NewPostgresStore(db, locomotiveTable),
		Roles:       NewPostgresStore(db, roleTable),
		Products:    NewPostgresStore(db, productTable),
		Employees:   NewPostgresStore(db, employeeTable),
		Customers:   NewPostgresStore(db, customerTable),
		Orders:      NewPostgresStore(db, orderTable),
		Shifts:      NewPostgresStore(db, shiftTable),
		USNShifts:   NewPostgresStore(db, usnShiftTable),
		Wagons:      NewPostgresWagonRepo(db),
	}
}
