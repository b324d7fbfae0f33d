package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/closerhq/leadboard/internal/analysis"
	"github.com/closerhq/leadboard/internal/report"
	"github.com/closerhq/leadboard/internal/table"
	"github.com/closerhq/leadboard/internal/utils"
	"github.com/closerhq/leadboard/internal/webhook"
)

type generateRequest struct {
	InitialLoad bool   `json:"initialLoad"`
	Fecha       string `json:"fecha"`
}

// handleGenerateReport forwards the request to the matching upstream webhook,
// normalizes the answer and stores it as the latest report. Any upstream or
// shape failure maps to a 500 with human-readable details.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}

	url := s.cfg.ReportByDateURL
	payload := map[string]string{"fecha": req.Fecha}
	if req.InitialLoad {
		url = s.cfg.ReportInitialURL
		payload = map[string]string{}
	}

	s.sim.Start()
	token := s.store.Begin()

	var rows []map[string]any
	if err := webhook.PostJSONWithRetry(r.Context(), s.client, url, payload, &rows, s.cfg.HTTPRetries); err != nil {
		s.sim.Stop()
		s.log.Error("report webhook failed", slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rep, err := report.Normalize(rows)
	if err != nil {
		s.sim.Stop()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !s.store.Complete(token, rep) {
		s.sim.Stop()
		s.log.Warn("stale report discarded", slog.Uint64("token", token))
		writeError(w, http.StatusConflict, "un reporte más reciente está en curso")
		return
	}
	s.virt.ResetMeasurements()
	s.sim.Finish()
	writeJSON(w, http.StatusOK, rep)
}

type changeDateRequest struct {
	Option     string `json:"option"`
	CustomDate string `json:"customDate"`
}

// handleChangeDate resolves a symbolic date option in the fixed zone and
// reloads the report scoped to that day.
func (s *Server) handleChangeDate(w http.ResponseWriter, r *http.Request) {
	var req changeDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	fecha, err := s.resolver.Resolve(req.Option, req.CustomDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token := s.store.Begin()
	var rows []map[string]any
	if err := webhook.PostJSONWithRetry(r.Context(), s.client, s.cfg.ReportByDateURL, map[string]string{"fecha": fecha}, &rows, s.cfg.HTTPRetries); err != nil {
		s.log.Error("date webhook failed", slog.String("err", err.Error()), slog.String("fecha", fecha))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rep, err := report.Normalize(rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !s.store.Complete(token, rep) {
		writeError(w, http.StatusConflict, "un reporte más reciente está en curso")
		return
	}
	s.virt.ResetMeasurements()
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset()
	s.virt.ResetMeasurements()
	s.sim.Stop()
	s.links.Release(sessionID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	pct, step := s.sim.Progress()
	writeJSON(w, http.StatusOK, map[string]any{"progress": pct, "step": step})
}

type leadRow struct {
	table.Row
	Lead report.Lead `json:"lead"`
}

type leadsResponse struct {
	Total     int       `json:"total"`
	TotalSize int       `json:"totalSize"`
	Rows      []leadRow `json:"rows"`
}

// handleLeads serves the filtered, sorted, virtualized view over the latest
// report. scrollTop/viewport select the materialized window; omitting
// viewport returns every row.
func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.store.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no hay reporte generado")
		return
	}

	v := r.URL.Query()
	leads := s.engine.Apply(rep.Leads, table.FromValues(v))

	scrollTop := atoiDef(v.Get("scrollTop"), 0)
	viewport := atoiDef(v.Get("viewport"), 0)
	var win table.Window
	if viewport > 0 {
		win = s.virt.Compute(len(leads), scrollTop, viewport)
	} else {
		win = s.virt.ComputeAll(len(leads))
	}

	rows := make([]leadRow, 0, len(win.Rows))
	for _, row := range win.Rows {
		rows = append(rows, leadRow{Row: row, Lead: leads[row.Index]})
	}
	writeJSON(w, http.StatusOK, leadsResponse{Total: len(leads), TotalSize: win.TotalSize, Rows: rows})
}

// handleSummary serves the metric cards with the large numbers already
// shortened for display.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.store.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no hay reporte generado")
		return
	}
	m := rep.Metrics
	writeJSON(w, http.StatusOK, map[string]any{
		"totalLeads":      m.TotalLeads,
		"asistieron":      m.Asistieron,
		"calificados":     m.Calificados,
		"ofertados":       m.Ofertados,
		"vendidos":        m.Vendidos,
		"cashTotal":       utils.FormatNumber(m.CashTotal),
		"closeRate":       m.CloseRate,
		"calificadosRate": m.PorcentajeCalificados,
	})
}

type measureRequest struct {
	Index  int `json:"index"`
	Height int `json:"height"`
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	var req measureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	s.virt.Measure(req.Index, req.Height)
	w.WriteHeader(http.StatusNoContent)
}

type addLinkRequest struct {
	URL    string `json:"url"`
	Closer string `json:"closer"`
}

func (s *Server) handleAddLink(w http.ResponseWriter, r *http.Request) {
	var req addLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" || req.Closer == "" {
		writeError(w, http.StatusBadRequest, "url y closer son obligatorios")
		return
	}
	l := s.links.Add(sessionID(r), req.URL, req.Closer)
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleRemoveLink(w http.ResponseWriter, r *http.Request) {
	s.links.Remove(sessionID(r), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.links.Links(sessionID(r)))
}

// handleAnalyzeLinks submits the session's valid links exactly once and
// parses the duck-typed answer. The submission slot is released on failure so
// the user can retry.
func (s *Server) handleAnalyzeLinks(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	payload, err := s.links.BuildPayload(session)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrAlreadyStarted):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, analysis.ErrNoValidLinks):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	var raw json.RawMessage
	if err := webhook.PostJSON(r.Context(), s.client, s.cfg.AnalysisURL, payload, &raw); err != nil {
		s.links.Release(session)
		s.log.Error("analysis webhook failed", slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := analysis.ParseResponse(raw)
	if err != nil {
		s.links.Release(session)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("analysis parsed", slog.String("shape", string(res.Shape)))
	writeJSON(w, http.StatusOK, res)
}

func sessionID(r *http.Request) string {
	if sid := r.Header.Get("X-Session-ID"); sid != "" {
		return sid
	}
	return "anonymous"
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
