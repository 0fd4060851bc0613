// Package sqlrows implementa rowstore.Store sobre database/sql.
// Postgres (pgx) y SQLite (modernc) comparten el builder; solo cambia el Dialect.
package sqlrows

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"animal-rescue/internal/ports/rowstore"
)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// likeEscaper neutraliza los comodines de LIKE en el texto buscado.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Dialect struct {
	Name        string
	Placeholder func(n int) string
	ILike       func(column, placeholder string) string
	// Encode adapta valores Go a lo que el driver sabe guardar.
	Encode func(v any) (any, error)
}

var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	ILike:       func(col, ph string) string { return col + " ILIKE " + ph + ` ESCAPE '\'` },
	Encode:      encodeJSONish,
}

// SQLite no tiene booleanos ni timestamps nativos: bool→0/1, tiempo→RFC3339.
var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: func(int) string { return "?" },
	ILike:       func(col, ph string) string { return "LOWER(" + col + ") LIKE LOWER(" + ph + `) ESCAPE '\'` },
	Encode: func(v any) (any, error) {
		switch t := v.(type) {
		case bool:
			if t {
				return int64(1), nil
			}
			return int64(0), nil
		case time.Time:
			return t.UTC().Format(time.RFC3339Nano), nil
		case *time.Time:
			if t == nil {
				return nil, nil
			}
			return t.UTC().Format(time.RFC3339Nano), nil
		}
		return encodeJSONish(v)
	},
}

// encodeJSONish serializa slices y maps (columnas jsonb / TEXT).
func encodeJSONish(v any) (any, error) {
	switch t := v.(type) {
	case []string, []any, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case *time.Time:
		if t == nil {
			return nil, nil
		}
		return *t, nil
	default:
		return v, nil
	}
}

type Store struct {
	db *sql.DB
	d  Dialect
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

// BuildSelect arma el SELECT con sus args. Exportado para tests.
func BuildSelect(d Dialect, q rowstore.Query) (string, []any, error) {
	if err := checkIdent(q.Table); err != nil {
		return "", nil, err
	}

	var (
		b    strings.Builder
		args []any
	)
	next := func(v any) (string, error) {
		ev, err := d.Encode(v)
		if err != nil {
			return "", err
		}
		args = append(args, ev)
		return d.Placeholder(len(args)), nil
	}

	b.WriteString("SELECT * FROM ")
	b.WriteString(q.Table)

	var where []string
	for _, c := range q.Where {
		expr, err := condition(d, c, next)
		if err != nil {
			return "", nil, err
		}
		where = append(where, expr)
	}
	if len(q.AnyOf) > 0 {
		var ors []string
		for _, c := range q.AnyOf {
			expr, err := condition(d, c, next)
			if err != nil {
				return "", nil, err
			}
			ors = append(ors, expr)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	if q.OrderBy != "" {
		if err := checkIdent(q.OrderBy); err != nil {
			return "", nil, err
		}
		dir := "DESC"
		if q.Ascending {
			dir = "ASC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}

	return b.String(), args, nil
}

func condition(d Dialect, c rowstore.Condition, next func(any) (string, error)) (string, error) {
	if err := checkIdent(c.Column); err != nil {
		return "", err
	}
	switch c.Op {
	case rowstore.OpILike:
		ph, err := next("%" + likeEscaper.Replace(fmt.Sprint(c.Value)) + "%")
		if err != nil {
			return "", err
		}
		return d.ILike(c.Column, ph), nil
	case rowstore.OpEq, "":
		ph, err := next(c.Value)
		if err != nil {
			return "", err
		}
		return c.Column + " = " + ph, nil
	default:
		return "", fmt.Errorf("sqlrows: unsupported op %q", c.Op)
	}
}

// BuildInsert: columnas en orden alfabético para SQL determinista.
func BuildInsert(d Dialect, table string, row rowstore.Row) (string, []any, error) {
	if err := checkIdent(table); err != nil {
		return "", nil, err
	}
	cols := sortedKeys(row)
	if len(cols) == 0 {
		return "", nil, errors.New("sqlrows: empty insert")
	}

	phs := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, c := range cols {
		if err := checkIdent(c); err != nil {
			return "", nil, err
		}
		v, err := d.Encode(row[c])
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
		phs = append(phs, d.Placeholder(i+1))
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), strings.Join(phs, ", "))
	return q, args, nil
}

func BuildUpdate(d Dialect, table, id string, patch rowstore.Row) (string, []any, error) {
	if err := checkIdent(table); err != nil {
		return "", nil, err
	}

	cols := sortedKeys(patch)
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		if c == "id" {
			continue
		}
		if err := checkIdent(c); err != nil {
			return "", nil, err
		}
		v, err := d.Encode(patch[c])
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
		sets = append(sets, c+" = "+d.Placeholder(len(args)))
	}
	if len(sets) == 0 {
		return "", nil, errors.New("sqlrows: empty update")
	}

	args = append(args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s RETURNING *",
		table, strings.Join(sets, ", "), d.Placeholder(len(args)))
	return q, args, nil
}

func (s *Store) Select(ctx context.Context, q rowstore.Query) ([]rowstore.Row, error) {
	query, args, err := BuildSelect(s.d, q)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func (s *Store) SelectOne(ctx context.Context, table, column string, value any) (rowstore.Row, error) {
	out, err := s.Select(ctx, *rowstore.From(table).Eq(column, value).Take(1))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, rowstore.ErrNoRows
	}
	return out[0], nil
}

func (s *Store) Insert(ctx context.Context, table string, row rowstore.Row) (rowstore.Row, error) {
	query, args, err := BuildInsert(s.d, table, row)
	if err != nil {
		return nil, err
	}
	return s.returningOne(ctx, table, query, args)
}

func (s *Store) Update(ctx context.Context, table, id string, patch rowstore.Row) (rowstore.Row, error) {
	if strings.TrimSpace(id) == "" {
		return nil, rowstore.ErrNoRows
	}
	query, args, err := BuildUpdate(s.d, table, id, patch)
	if err != nil {
		return nil, err
	}
	return s.returningOne(ctx, table, query, args)
}

func (s *Store) returningOne(ctx context.Context, table, query string, args []any) (rowstore.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", table, err)
	}
	defer rows.Close()

	out, err := scanAll(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, rowstore.ErrNoRows
	}
	return out[0], nil
}

func scanAll(rows *sql.Rows) ([]rowstore.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]rowstore.Row, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		r := make(rowstore.Row, len(cols))
		for i, c := range cols {
			// []byte del driver se reutiliza entre filas
			if b, ok := vals[i].([]byte); ok {
				r[c] = string(b)
				continue
			}
			r[c] = vals[i]
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func checkIdent(s string) error {
	if !identRe.MatchString(s) {
		return fmt.Errorf("sqlrows: invalid identifier %q", s)
	}
	return nil
}

func sortedKeys(r rowstore.Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
