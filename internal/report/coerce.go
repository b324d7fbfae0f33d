package report

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts an untyped JSON value to a float64. Strings are
// stripped of everything outside [0-9.-] before parsing, so currency symbols
// and thousands separators vanish; inputs are assumed dot-decimal ("1,234.50"
// parses as 1234.50, comma-decimal inputs are not supported). Anything
// unparseable degrades to 0, never an error.
func ParseNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		var b strings.Builder
		for _, r := range n {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				b.WriteRune(r)
			}
		}
		f, err := strconv.ParseFloat(b.String(), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ParseBool recognizes the tolerant yes-ish values the upstream sheet uses.
// Numbers are deliberately not coerced: 1 is false here.
func ParseBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(b) {
		case "si", "sí", "true":
			return true
		}
		return false
	default:
		return false
	}
}
