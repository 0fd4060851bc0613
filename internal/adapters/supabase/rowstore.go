package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"animal-rescue/internal/platform/httpclient"
	"animal-rescue/internal/ports/rowstore"
)

const restPrefix = "/rest/v1/"

// RowStore implementa rowstore.Store sobre PostgREST.
type RowStore struct {
	c *Client
}

func NewRowStore(c *Client) *RowStore {
	return &RowStore{c: c}
}

func (s *RowStore) Select(ctx context.Context, q rowstore.Query) ([]rowstore.Row, error) {
	var out []rowstore.Row
	err := s.c.http.Do(ctx, httpRequest(http.MethodGet, q.Table, EncodeQuery(q), s.c.bearer(""), nil), &out)
	if err != nil {
		return nil, fmt.Errorf("supabase select %s: %w", q.Table, err)
	}
	if out == nil {
		out = []rowstore.Row{}
	}
	return out, nil
}

func (s *RowStore) SelectOne(ctx context.Context, table, column string, value any) (rowstore.Row, error) {
	rows, err := s.Select(ctx, *rowstore.From(table).Eq(column, value).Take(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, rowstore.ErrNoRows
	}
	return rows[0], nil
}

func (s *RowStore) Insert(ctx context.Context, table string, row rowstore.Row) (rowstore.Row, error) {
	headers := s.c.bearer("")
	headers["Prefer"] = "return=representation"

	var out []rowstore.Row
	if err := s.c.http.Do(ctx, httpRequest(http.MethodPost, table, nil, headers, row), &out); err != nil {
		return nil, fmt.Errorf("supabase insert %s: %w", table, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("supabase insert %s: empty representation", table)
	}
	return out[0], nil
}

func (s *RowStore) Update(ctx context.Context, table, id string, patch rowstore.Row) (rowstore.Row, error) {
	body := patch.Clone()
	delete(body, "id")

	headers := s.c.bearer("")
	headers["Prefer"] = "return=representation"
	q := url.Values{"id": {"eq." + id}}

	var out []rowstore.Row
	if err := s.c.http.Do(ctx, httpRequest(http.MethodPatch, table, q, headers, body), &out); err != nil {
		return nil, fmt.Errorf("supabase update %s: %w", table, err)
	}
	if len(out) == 0 {
		return nil, rowstore.ErrNoRows
	}
	return out[0], nil
}

func httpRequest(method, table string, q url.Values, headers map[string]string, body any) httpclient.Request {
	return httpclient.Request{Method: method, Path: restPrefix + table, Query: q, Headers: headers, Body: body}
}

// EncodeQuery traduce Query a la sintaxis de filtros de PostgREST.
func EncodeQuery(q rowstore.Query) url.Values {
	v := url.Values{}
	v.Set("select", "*")
	for _, c := range q.Where {
		v.Add(c.Column, operator(c))
	}
	if len(q.AnyOf) > 0 {
		parts := make([]string, 0, len(q.AnyOf))
		for _, c := range q.AnyOf {
			parts = append(parts, c.Column+"."+quoteOr(operator(c)))
		}
		v.Set("or", "("+strings.Join(parts, ",")+")")
	}
	if q.OrderBy != "" {
		dir := "desc"
		if q.Ascending {
			dir = "asc"
		}
		v.Set("order", q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func operator(c rowstore.Condition) string {
	if c.Op == rowstore.OpILike {
		return "ilike.*" + likeEscaper.Replace(literal(c.Value)) + "*"
	}
	return "eq." + literal(c.Value)
}

// likeEscaper: PostgREST traduce * a %, así que se descarta; % y _ se
// escapan con el escape por defecto de LIKE.
var likeEscaper = strings.NewReplacer(`*`, ``, `\`, `\\`, `%`, `\%`, `_`, `\_`)

// quoteOr: dentro de or=(...) las comas y paréntesis del valor van entre comillas.
func quoteOr(op string) string {
	dot := strings.IndexByte(op, '.')
	name, val := op[:dot], op[dot+1:]
	if !strings.ContainsAny(val, ",()\"") {
		return op
	}
	val = strings.ReplaceAll(val, `\`, `\\`)
	val = strings.ReplaceAll(val, `"`, `\"`)
	return name + `."` + val + `"`
}

func literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}
