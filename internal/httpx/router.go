package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/closerhq/leadboard/internal/analysis"
	"github.com/closerhq/leadboard/internal/config"
	"github.com/closerhq/leadboard/internal/daterange"
	"github.com/closerhq/leadboard/internal/progress"
	"github.com/closerhq/leadboard/internal/store"
	"github.com/closerhq/leadboard/internal/table"
	"github.com/closerhq/leadboard/internal/utils"
	"github.com/closerhq/leadboard/internal/webhook"
)

type Server struct {
	log      *slog.Logger
	cfg      config.Config
	client   webhook.HTTPClient
	store    *store.MemoryStore
	engine   *table.Engine
	virt     *table.Virtualizer
	resolver *daterange.Resolver
	links    *analysis.Manager
	sim      *progress.Simulator
}

func NewServer(log *slog.Logger, cfg config.Config, client webhook.HTTPClient, st *store.MemoryStore, resolver *daterange.Resolver, links *analysis.Manager) *Server {
	return &Server{
		log:      log,
		cfg:      cfg,
		client:   client,
		store:    st,
		engine:   table.NewEngine(),
		virt:     table.NewVirtualizer(),
		resolver: resolver,
		links:    links,
		sim:      progress.NewSimulator(),
	}
}

func NewRouter(s *Server) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(s.log))
	mux.Use(utils.Metrics)
	mux.Use(utils.EmbedHeaders)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/api/generate-report", s.handleGenerateReport)
	mux.Get("/api/date-options", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, daterange.Options)
	})
	mux.Post("/api/change-date", s.handleChangeDate)
	mux.Post("/api/report/reset", s.handleReset)
	mux.Get("/api/report/summary", s.handleSummary)
	mux.Get("/api/progress", s.handleProgress)

	mux.Get("/api/leads", s.handleLeads)
	mux.Post("/api/leads/measure", s.handleMeasure)

	mux.Get("/api/links", s.handleListLinks)
	mux.Post("/api/links", s.handleAddLink)
	mux.Delete("/api/links/{id}", s.handleRemoveLink)
	mux.Post("/api/analyze-links", s.handleAnalyzeLinks)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, details string) {
	writeJSON(w, status, map[string]string{
		"error":   "Error interno del servidor",
		"details": details,
	})
}
