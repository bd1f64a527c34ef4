package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/eventscout/eventscout/internal/app"
	"github.com/eventscout/eventscout/internal/config"
	"github.com/eventscout/eventscout/internal/logger"
	"github.com/eventscout/eventscout/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(false)
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	limit := flag.Int("limit", cfg.Limit, "max candidates per digest")
	maxPerSource := flag.Int("max-per-source", cfg.MaxPerSource, "max raw items per source")
	minScore := flag.Float64("min-score", cfg.MinScore, "minimum score for selection")
	interval := flag.Int("interval-minutes", cfg.IntervalMinutes, "minutes between cycles, 0 runs once")
	maxCycles := flag.Int("max-cycles", cfg.MaxCycles, "stop after N cycles, 0 runs forever")
	queriesPath := flag.String("queries", cfg.QueriesPath, "path to queries config")
	seenPath := flag.String("seen", cfg.SeenPath, "path to seen ids file")
	verbose := flag.Bool("verbose", cfg.Verbose, "enable debug logging")
	flag.Parse()

	cfg.Limit = *limit
	cfg.MaxPerSource = *maxPerSource
	cfg.MinScore = *minScore
	cfg.IntervalMinutes = *interval
	cfg.MaxCycles = *maxCycles
	cfg.QueriesPath = *queriesPath
	cfg.SeenPath = *seenPath
	cfg.Verbose = *verbose

	logger.Init(cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scout, err := app.New(cfg)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer scout.Close()

	if err := scout.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
	logger.Info("eventscout stopped")
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("monitoring server listening", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server failed", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
