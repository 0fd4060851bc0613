// Package validation evalúa registros de formularios contra tablas de campos.
// Las reglas de string/número usan tags de go-playground/validator vía Var;
// no hay reflection sobre structs completos.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Kind int

const (
	String Kind = iota
	Number
	Bool
	List
)

const (
	msgNumber = "must be a number"
	msgBool   = "must be true or false"
)

type Field struct {
	Name string
	Kind Kind
	// Rules son tags de validator (p.ej. "min=2", "email", "oneof=a b").
	Rules   string
	Pattern *regexp.Regexp
	// Message es el mensaje por defecto; Messages lo pisa por tag fallido.
	Message  string
	Messages map[string]string
	Optional bool
	// When: si devuelve false, el campo no se valida.
	When func(Values) bool
}

type Schema struct {
	Name   string
	Fields []Field
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Errors: campo -> mensaje legible.
type Errors map[string]string

type Result struct {
	Errors Errors `json:"errors"`
}

func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Validate evalúa todos los campos del schema.
func (s Schema) Validate(v Values) Result {
	return s.validate(v, s.Fields)
}

// ValidateFields evalúa solo names (en el orden del schema). Nombres
// desconocidos se ignoran.
func (s Schema) ValidateFields(v Values, names []string) Result {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	fields := make([]Field, 0, len(names))
	for _, f := range s.Fields {
		if want[f.Name] {
			fields = append(fields, f)
		}
	}
	return s.validate(v, fields)
}

func (s Schema) validate(v Values, fields []Field) Result {
	errs := Errors{}
	for _, f := range fields {
		if msg, ok := checkField(f, v); !ok {
			errs[f.Name] = msg
		}
	}
	return Result{Errors: errs}
}

func checkField(f Field, v Values) (string, bool) {
	if f.When != nil && !f.When(v) {
		return "", true
	}

	raw, present := v.lookup(f.Name, f.Kind)
	if !present {
		if f.Optional {
			return "", true
		}
		return f.message("required"), false
	}

	switch f.Kind {
	case Number:
		n, ok := toNumber(raw)
		if !ok {
			return msgNumber, false
		}
		return f.run(n)

	case Bool:
		b, ok := toBool(raw)
		if !ok {
			return msgBool, false
		}
		return f.run(b)

	case List:
		return f.run(toStrings(raw))

	default:
		s := strings.TrimSpace(toString(raw))
		if msg, ok := f.run(s); !ok {
			return msg, false
		}
		if f.Pattern != nil && !f.Pattern.MatchString(s) {
			return f.message("pattern"), false
		}
		return "", true
	}
}

func (f Field) run(value any) (string, bool) {
	if f.Rules == "" {
		return "", true
	}
	err := validate.Var(value, f.Rules)
	if err == nil {
		return "", true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return f.message(verrs[0].Tag()), false
	}
	// InvalidValidationError: tags mal escritos en la tabla.
	panic(fmt.Sprintf("validation: field %s: %v", f.Name, err))
}

func (f Field) message(tag string) string {
	if m, ok := f.Messages[tag]; ok {
		return m
	}
	if f.Message != "" {
		return f.Message
	}
	if tag == "required" {
		return "is required"
	}
	return "is invalid"
}

// Values es el registro acumulado de un formulario (JSON decodificado).
type Values map[string]any

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		switch t := val.(type) {
		case []string:
			out[k] = append([]string(nil), t...)
		case []any:
			out[k] = append([]any(nil), t...)
		default:
			out[k] = val
		}
	}
	return out
}

// Merge copia patch encima; un valor nil borra la clave.
func (v Values) Merge(patch Values) Values {
	out := v.Clone()
	for k, val := range patch {
		if val == nil {
			delete(out, k)
			continue
		}
		out[k] = val
	}
	return out
}

func (v Values) String(key string) string {
	return strings.TrimSpace(toString(v[key]))
}

func (v Values) Int(key string) int {
	n, _ := toNumber(v[key])
	return int(n)
}

func (v Values) Float(key string) float64 {
	n, _ := toNumber(v[key])
	return n
}

func (v Values) Bool(key string) bool {
	b, _ := toBool(v[key])
	return b
}

func (v Values) Strings(key string) []string {
	return toStrings(v[key])
}

// lookup: un string en blanco o una lista vacía cuentan como ausentes.
func (v Values) lookup(key string, kind Kind) (any, bool) {
	raw, ok := v[key]
	if !ok || raw == nil {
		return nil, false
	}
	switch kind {
	case String:
		if strings.TrimSpace(toString(raw)) == "" {
			return nil, false
		}
	case Number:
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			return nil, false
		}
	}
	return raw, true
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// toNumber rechaza NaN e Inf: ParseFloat los acepta pero no son números
// de formulario.
func toNumber(v any) (float64, bool) {
	f, ok := parseNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "on", "yes", "1":
			return true, true
		case "false", "off", "no", "0":
			return false, true
		}
	}
	return false, false
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s := strings.TrimSpace(toString(it)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, p := range strings.Split(t, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}
