package logger

import (
	"errors"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Fatalf("expected json format")
	}
	if ParseFormat("anything") != FormatText {
		t.Fatalf("expected text format as default")
	}
}

func TestToZapFields_SortedAndSkipsBlankKeys(t *testing.T) {
	fields := toZapFields(map[string]any{
		"b":   1,
		"a":   "x",
		"  ":  "ignored",
		"err": errors.New("boom"),
	})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Key != "a" || fields[1].Key != "b" || fields[2].Key != "err" {
		t.Fatalf("unexpected order: %s %s %s", fields[0].Key, fields[1].Key, fields[2].Key)
	}
}

func TestNop_WithReturnsUsableLogger(t *testing.T) {
	l := Nop().With(map[string]any{"component": "test"})
	l.Info("hello", map[string]any{"k": "v"})
	if l.Zap() == nil {
		t.Fatalf("expected underlying zap logger")
	}
}
