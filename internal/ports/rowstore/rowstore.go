// Package rowstore define el acceso a tablas que usan los servicios de dominio.
// Los adapters (memory, postgres, sqlite, supabase) lo implementan.
package rowstore

import (
	"context"
	"errors"
	"strings"
)

var ErrNoRows = errors.New("rowstore: no rows")

type Op string

const (
	OpEq Op = "eq"
	// OpILike: contiene, sin distinguir mayúsculas. Value es el texto buscado;
	// cada adapter agrega sus comodines.
	OpILike Op = "ilike"
)

type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Query: Where se combina con AND; AnyOf es un grupo OR que se suma con AND.
type Query struct {
	Table     string
	Where     []Condition
	AnyOf     []Condition
	OrderBy   string
	Ascending bool
	Limit     int
}

func From(table string) *Query {
	return &Query{Table: table}
}

func (q *Query) Eq(column string, value any) *Query {
	q.Where = append(q.Where, Condition{Column: column, Op: OpEq, Value: value})
	return q
}

// Search agrega un grupo OR de ILIKE sobre columns. Texto vacío no filtra.
func (q *Query) Search(text string, columns ...string) *Query {
	text = strings.TrimSpace(text)
	if text == "" {
		return q
	}
	for _, c := range columns {
		q.AnyOf = append(q.AnyOf, Condition{Column: c, Op: OpILike, Value: text})
	}
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	q.OrderBy = column
	q.Ascending = ascending
	return q
}

func (q *Query) Take(n int) *Query {
	q.Limit = n
	return q
}

type Store interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	// SelectOne devuelve ErrNoRows si no hay coincidencia.
	SelectOne(ctx context.Context, table, column string, value any) (Row, error)
	// Insert devuelve la fila tal como quedó guardada.
	Insert(ctx context.Context, table string, row Row) (Row, error)
	// Update aplica patch sobre la fila con ese id; ErrNoRows si no existe.
	Update(ctx context.Context, table, id string, patch Row) (Row, error)
}
