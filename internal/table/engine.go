package table

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/closerhq/leadboard/internal/report"
)

// Query captures one table interaction: free-text search, status filter and
// the single active sort column.
type Query struct {
	Search  string
	Status  string // "all" or a report.Status value
	SortKey string
	SortDir string // "asc" | "desc"
}

func FromValues(v url.Values) Query {
	q := Query{
		Search:  strings.TrimSpace(v.Get("search")),
		Status:  strings.ToLower(strings.TrimSpace(v.Get("status"))),
		SortKey: v.Get("sort"),
		SortDir: v.Get("dir"),
	}
	if q.Status == "" {
		q.Status = "all"
	}
	if q.SortKey == "" {
		// the dashboard opens sorted by meeting date, newest first
		q.SortKey = "fechaReunion"
		q.SortDir = "desc"
	}
	if q.SortDir != "desc" {
		q.SortDir = "asc"
	}
	return q
}

// Toggle returns the sort state after clicking a column header: a repeat
// click flips the direction, a new column starts ascending.
func (q Query) Toggle(key string) Query {
	if q.SortKey == key && q.SortDir == "asc" {
		q.SortDir = "desc"
	} else {
		q.SortDir = "asc"
	}
	q.SortKey = key
	return q
}

// Engine applies filter and sort over a lead list. It holds a Spanish
// collator because the string columns carry accented names; the collator
// keeps mutable iterator state, so sorting takes the mutex.
type Engine struct {
	mu  sync.Mutex
	col *collate.Collator
}

func NewEngine() *Engine {
	return &Engine{col: collate.New(language.Spanish)}
}

// Apply filters then stable-sorts a copy of leads; the input slice is never
// reordered in place since it backs the stored report.
func (e *Engine) Apply(leads []report.Lead, q Query) []report.Lead {
	out := make([]report.Lead, 0, len(leads))
	term := strings.ToLower(q.Search)
	for _, l := range leads {
		if term != "" &&
			!strings.Contains(strings.ToLower(l.Nombre), term) &&
			!strings.Contains(l.Telefono, q.Search) &&
			!strings.Contains(strings.ToLower(l.CloserACargo), term) {
			continue
		}
		if q.Status != "all" && string(l.Status) != q.Status {
			continue
		}
		out = append(out, l)
	}

	cmp, ok := comparators[q.SortKey]
	if !ok {
		return out
	}
	asc := q.SortDir != "desc"
	e.mu.Lock()
	defer e.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(e, out[i], out[j])
		if asc {
			return c < 0
		}
		return c > 0
	})
	return out
}

type compareFn func(e *Engine, a, b report.Lead) int

var comparators = map[string]compareFn{
	"nombre":        func(e *Engine, a, b report.Lead) int { return e.col.CompareString(a.Nombre, b.Nombre) },
	"telefono":      func(e *Engine, a, b report.Lead) int { return e.col.CompareString(a.Telefono, b.Telefono) },
	"fechaReunion":  func(e *Engine, a, b report.Lead) int { return e.col.CompareString(a.FechaReunion, b.FechaReunion) },
	"closerACargo":  func(e *Engine, a, b report.Lead) int { return e.col.CompareString(a.CloserACargo, b.CloserACargo) },
	"notas":         func(e *Engine, a, b report.Lead) int { return e.col.CompareString(a.Notas, b.Notas) },
	"status":        func(e *Engine, a, b report.Lead) int { return e.col.CompareString(string(a.Status), string(b.Status)) },
	"asistio":       func(e *Engine, a, b report.Lead) int { return cmpBool(a.Asistio, b.Asistio) },
	"calificada":    func(e *Engine, a, b report.Lead) int { return cmpBool(a.Calificada, b.Calificada) },
	"cashCollected": func(e *Engine, a, b report.Lead) int { return cmpFloat(a.CashCollected, b.CashCollected) },
	"facturacion":   func(e *Engine, a, b report.Lead) int { return cmpFloat(a.Facturacion, b.Facturacion) },
}

func cmpBool(a, b bool) int {
	return boolToInt(a) - boolToInt(b)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
