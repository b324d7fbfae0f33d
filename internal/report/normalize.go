package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPayload is returned when the upstream webhook answer is not a
// non-empty array of rows.
var ErrInvalidPayload = errors.New("webhook response is not a valid non-empty array")

// Normalize maps the raw webhook rows into a strict Report. The first row is
// the metrics row by positional contract; every following row is one lead.
// Missing fields fall back to literals so the output is always structurally
// complete, and no cross-check between metrics and len(leads) is attempted:
// upstream inconsistency is passed through, not corrected.
func Normalize(rows []map[string]any) (Report, error) {
	if len(rows) == 0 {
		return Report{}, ErrInvalidPayload
	}

	raw := rows[0]
	metrics := Metrics{
		TotalLeads:            int(ParseNumber(raw["totalLeads"])),
		Asistieron:            int(ParseNumber(raw["asistieron"])),
		Calificados:           int(ParseNumber(raw["calificados"])),
		Ofertados:             int(ParseNumber(raw["ofertados"])),
		Vendidos:              int(ParseNumber(raw["vendidos"])),
		CashTotal:             ParseNumber(raw["cashTotal"]),
		CloseRate:             stringOr(raw["closeRate"], "0%"),
		PorcentajeCalificados: stringOr(raw["calificadosRate"], "0%"),
	}

	leads := make([]Lead, 0, len(rows)-1)
	for _, r := range rows[1:] {
		leads = append(leads, Lead{
			Nombre:        stringOr(r["Nombre"], "N/A"),
			Telefono:      stringOr(r["Telefono"], ""),
			FechaReunion:  stringOr(r["Fecha de la reunión"], ""),
			CloserACargo:  stringOr(r["Closer a cargo"], "N/A"),
			Asistio:       ParseBool(r["Asistió"]),
			Calificada:    ParseBool(r["Calificada?"]),
			Status:        deriveStatus(r["Ofertada/Vendida"]),
			CashCollected: ParseNumber(r["Cash collected"]),
			Facturacion:   ParseNumber(r["Facturación"]),
			Notas:         stringOr(r["Notas (dolores, deseos, problemas, objeciones de manera textual)"], ""),
		})
	}

	return Report{Metrics: metrics, Leads: leads}, nil
}

// deriveStatus collapses whatever status text upstream tracks into the
// two-value enum: anything mentioning "cerrada" counts as sold.
func deriveStatus(v any) Status {
	if strings.Contains(strings.ToLower(stringify(v)), "cerrada") {
		return StatusVendida
	}
	return StatusOfertada
}

func stringOr(v any, def string) string {
	s := stringify(v)
	if s == "" {
		return def
	}
	return s
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		// phone numbers and dates sometimes arrive as JSON numbers
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(v)
	}
}
