package rowstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row es una fila como la devuelve cada backend. Los getters toleran las
// distintas representaciones (JSON decodificado, pgx, sqlite).
type Row map[string]any

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		switch t := v.(type) {
		case []string:
			out[k] = append([]string(nil), t...)
		case []any:
			out[k] = append([]any(nil), t...)
		default:
			out[k] = v
		}
	}
	return out
}

func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (r Row) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	case []byte:
		n, _ := strconv.Atoi(strings.TrimSpace(string(v)))
		return n
	default:
		return 0
	}
}

func (r Row) Float(key string) float64 {
	f, _ := r.FloatOK(key)
	return f
}

// FloatOK distingue "no hay valor" de cero.
func (r Row) FloatOK(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (r Row) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	case []byte:
		b, _ := strconv.ParseBool(strings.TrimSpace(string(v)))
		return b
	default:
		return false
	}
}

// Strings acepta []string, []any o un array JSON serializado.
func (r Row) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return decodeStrings([]byte(v))
	case []byte:
		return decodeStrings(v)
	default:
		return nil
	}
}

// Object acepta map[string]any o un objeto JSON serializado.
func (r Row) Object(key string) map[string]any {
	switch v := r[key].(type) {
	case map[string]any:
		return v
	case string:
		return decodeObject([]byte(v))
	case []byte:
		return decodeObject(v)
	default:
		return nil
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

func (r Row) Time(key string) time.Time {
	t, _ := r.TimeOK(key)
	return t
}

func (r Row) TimeOK(key string) (time.Time, bool) {
	var s string
	switch v := r[key].(type) {
	case time.Time:
		return v.UTC(), true
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return time.Time{}, false
	}

	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func decodeStrings(b []byte) []string {
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func decodeObject(b []byte) map[string]any {
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
