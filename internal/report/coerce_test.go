package report

import "testing"

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"plain number", 42.5, 42.5},
		{"int", 7, 7},
		{"currency with thousands comma", "$1,234.50", 1234.50},
		{"percent suffix", "42%", 42},
		{"negative", "-15", -15},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
		{"bool is not numeric", true, 0},
		{"empty string", "", 0},
		{"only separators", "$,", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseNumber(tc.in); got != tc.want {
				t.Fatalf("ParseNumber(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseNumberIdempotent(t *testing.T) {
	for _, in := range []any{"$1,234.50", 99.9, "abc", nil} {
		once := ParseNumber(in)
		if twice := ParseNumber(once); twice != once {
			t.Fatalf("not idempotent for %v: %v != %v", in, twice, once)
		}
	}
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"Sí", true},
		{"SI", true},
		{"si", true},
		{"true", true},
		{"TRUE", true},
		{"no", false},
		{"", false},
		{true, true},
		{false, false},
		// numeric truthiness is deliberately not coerced
		{1, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := ParseBool(tc.in); got != tc.want {
			t.Fatalf("ParseBool(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
