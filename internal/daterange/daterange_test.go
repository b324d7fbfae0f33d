package daterange

import (
	"testing"
	"time"
)

// 03:00 UTC is still the previous evening in Bogotá (UTC-5); the resolver
// must follow the zone's calendar, not the caller's.
func fixedNow() time.Time {
	return time.Date(2025, 8, 2, 3, 0, 0, 0, time.UTC)
}

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolverAt(fixedNow)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	return r
}

func TestResolveRelativeOptions(t *testing.T) {
	r := newResolver(t)
	cases := []struct {
		option string
		want   string
	}{
		{"today", "01/08/2025"},
		{"yesterday", "31/07/2025"},
		{"7days", "25/07/2025"},
		{"15days", "17/07/2025"},
		{"1month", "02/07/2025"},
	}
	for _, tc := range cases {
		got, err := r.Resolve(tc.option, "")
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.option, err)
		}
		if got != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.option, got, tc.want)
		}
	}
}

func TestResolveCustomDate(t *testing.T) {
	r := newResolver(t)
	got, err := r.Resolve("custom", "2025-03-09")
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	if got != "09/03/2025" {
		t.Fatalf("custom = %q, want 09/03/2025", got)
	}
}

func TestResolveCustomDateBad(t *testing.T) {
	r := newResolver(t)
	if _, err := r.Resolve("custom", "9 de marzo"); err == nil {
		t.Fatal("expected error for malformed custom date")
	}
}

func TestResolveUnknownOption(t *testing.T) {
	r := newResolver(t)
	if _, err := r.Resolve("fortnight", ""); err == nil {
		t.Fatal("expected error for unknown option")
	}
}
