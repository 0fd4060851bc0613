package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"animal-rescue/internal/ports/rowstore"
)

type table struct {
	order []string
	byID  map[string]rowstore.Row
}

// RowStore guarda filas en memoria. Pensado para dev y tests.
type RowStore struct {
	mu     sync.RWMutex
	tables map[string]*table
}

func NewRowStore() *RowStore {
	return &RowStore{tables: make(map[string]*table)}
}

func (s *RowStore) Select(ctx context.Context, q rowstore.Query) ([]rowstore.Row, error) {
	if strings.TrimSpace(q.Table) == "" {
		return nil, errors.New("table required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.tables[q.Table]
	if t == nil {
		return []rowstore.Row{}, nil
	}

	out := make([]rowstore.Row, 0, len(t.order))
	for _, id := range t.order {
		r := t.byID[id]
		if matches(r, q) {
			out = append(out, r.Clone())
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][q.OrderBy], out[j][q.OrderBy])
			if q.Ascending {
				return c < 0
			}
			return c > 0
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *RowStore) SelectOne(ctx context.Context, tbl, column string, value any) (rowstore.Row, error) {
	rows, err := s.Select(ctx, *rowstore.From(tbl).Eq(column, value).Take(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, rowstore.ErrNoRows
	}
	return rows[0], nil
}

func (s *RowStore) Insert(ctx context.Context, tbl string, row rowstore.Row) (rowstore.Row, error) {
	if strings.TrimSpace(tbl) == "" {
		return nil, errors.New("table required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tables[tbl]
	if t == nil {
		t = &table{byID: make(map[string]rowstore.Row)}
		s.tables[tbl] = t
	}

	r := row.Clone()
	id := r.String("id")
	if id == "" {
		id = uuid.NewString()
		r["id"] = id
	}
	if _, exists := t.byID[id]; exists {
		return nil, fmt.Errorf("%s: duplicate id %s", tbl, id)
	}
	if !r.Has("created_at") {
		r["created_at"] = time.Now().UTC()
	}

	t.byID[id] = r
	t.order = append(t.order, id)
	return r.Clone(), nil
}

func (s *RowStore) Update(ctx context.Context, tbl, id string, patch rowstore.Row) (rowstore.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tables[tbl]
	if t == nil {
		return nil, rowstore.ErrNoRows
	}
	r, ok := t.byID[id]
	if !ok {
		return nil, rowstore.ErrNoRows
	}

	next := r.Clone()
	for k, v := range patch.Clone() {
		if k == "id" {
			continue
		}
		next[k] = v
	}
	t.byID[id] = next
	return next.Clone(), nil
}

func matches(r rowstore.Row, q rowstore.Query) bool {
	for _, c := range q.Where {
		if !matchOne(r, c) {
			return false
		}
	}
	if len(q.AnyOf) == 0 {
		return true
	}
	for _, c := range q.AnyOf {
		if matchOne(r, c) {
			return true
		}
	}
	return false
}

func matchOne(r rowstore.Row, c rowstore.Condition) bool {
	switch c.Op {
	case rowstore.OpILike:
		needle := strings.ToLower(fmt.Sprint(c.Value))
		return strings.Contains(strings.ToLower(r.String(c.Column)), needle)
	default:
		return compare(r[c.Column], c.Value) == 0
	}
}

// compare ordena nil primero; mezcla de tipos cae a comparación textual.
func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			default:
				return 1
			}
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
