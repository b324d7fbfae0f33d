package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/closerhq/leadboard/internal/analysis"
	"github.com/closerhq/leadboard/internal/config"
	"github.com/closerhq/leadboard/internal/daterange"
	"github.com/closerhq/leadboard/internal/httpx"
	"github.com/closerhq/leadboard/internal/store"
	"github.com/closerhq/leadboard/internal/webhook"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	resolver, err := daterange.NewResolver()
	if err != nil {
		logger.Error("timezone init", slog.String("err", err.Error()))
		os.Exit(1)
	}

	cl := webhook.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewMemoryStore()
	links := analysis.NewManager()

	srv := httpx.NewServer(logger, cfg, cl, st, resolver, links)
	r := httpx.NewRouter(srv)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
