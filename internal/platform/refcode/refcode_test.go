package refcode

import (
	"regexp"
	"testing"
	"time"
)

func TestNew_Format(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	got := New("rr", now, 6)

	re := regexp.MustCompile(`^RR-[0-9A-Z]+-[0-9A-Z]{6}$`)
	if !re.MatchString(got) {
		t.Fatalf("unexpected format %q", got)
	}
	if Timestamp(now) != "LOYW3V28" {
		t.Fatalf("unexpected timestamp encoding %q", Timestamp(now))
	}
}

func TestNew_DistinctForSameInstant(t *testing.T) {
	now := time.Now()
	a := New("APP", now, 6)
	b := New("APP", now, 6)
	if a == b {
		t.Fatalf("expected distinct codes, got %q twice", a)
	}
}

func TestRandom_LengthAndCase(t *testing.T) {
	got := Random(8)
	if !regexp.MustCompile(`^[0-9A-Z]{8}$`).MatchString(got) {
		t.Fatalf("unexpected random %q", got)
	}
	if Random(0) != "" {
		t.Fatalf("expected empty string for n=0")
	}
}
