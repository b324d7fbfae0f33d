package analysis

import (
	"encoding/json"
	"errors"
)

// ErrBadShape is returned when the analysis webhook answer matches none of
// the known response layouts.
var ErrBadShape = errors.New("analysis webhook returned data in an unknown shape")

// Shape names which response layout matched, so callers can log what the
// upstream actually sent instead of silently guessing.
type Shape string

const (
	// ShapePair is the two-element array [metricsObj, analysisObj].
	ShapePair Shape = "pair"
	// ShapeSingle is a one-element array whose element carries everything.
	ShapeSingle Shape = "single"
	// ShapeObject is a bare object with metrics+analysis or a flat output.
	ShapeObject Shape = "object"
)

// CallMetrics is the call-performance block of an analysis answer.
type CallMetrics struct {
	LlamadasTomadas   int     `json:"llamadas_tomadas"`
	LlamadasOfertadas int     `json:"llamadas_ofertadas"`
	LlamadasCerradas  int     `json:"llamadas_cerradas"`
	CloseRate         string  `json:"close_rate"`
	CashCollected     float64 `json:"cash_collected"`
	Facturacion       float64 `json:"facturacion"`
}

// Result is a parsed analysis answer: the metrics block (when present) and
// the free-text analysis output.
type Result struct {
	Shape   Shape        `json:"shape"`
	Metrics *CallMetrics `json:"metrics,omitempty"`
	Output  string       `json:"output"`
}

type envelope struct {
	Metrics  *CallMetrics `json:"metrics"`
	Analysis *struct {
		Output string `json:"output"`
	} `json:"analysis"`
	Output string `json:"output"`
}

// ParseResponse tries the known layouts in fixed priority order: two-element
// array, one-element array, bare object. A candidate is accepted only when it
// carries both metrics and analysis text, or at least a flat output string.
func ParseResponse(raw json.RawMessage) (Result, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) >= 2 {
			var m CallMetrics
			var a struct {
				Output string `json:"output"`
			}
			if json.Unmarshal(arr[0], &m) == nil && json.Unmarshal(arr[1], &a) == nil && a.Output != "" {
				return Result{Shape: ShapePair, Metrics: &m, Output: a.Output}, nil
			}
			return Result{}, ErrBadShape
		}
		if len(arr) == 1 {
			if res, ok := fromEnvelope(arr[0]); ok {
				res.Shape = ShapeSingle
				return res, nil
			}
		}
		return Result{}, ErrBadShape
	}

	if res, ok := fromEnvelope(raw); ok {
		res.Shape = ShapeObject
		return res, nil
	}
	return Result{}, ErrBadShape
}

func fromEnvelope(raw json.RawMessage) (Result, bool) {
	var e envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return Result{}, false
	}
	if e.Metrics != nil && e.Analysis != nil && e.Analysis.Output != "" {
		return Result{Metrics: e.Metrics, Output: e.Analysis.Output}, true
	}
	if e.Output != "" {
		return Result{Output: e.Output}, true
	}
	return Result{}, false
}
