package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitness-planner/internal/config"
	"fitness-planner/internal/models"
	"fitness-planner/internal/plan"
	"fitness-planner/internal/telemetry"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.PlanServicePort,
		Handler:           telemetry.Middleware(newMux()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("Plan service listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /plans", generatePlan)
	return mux
}

func generatePlan(w http.ResponseWriter, r *http.Request) {
	var p plan.Profile
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "malformed JSON: " + err.Error()})
		return
	}

	out, err := plan.Generate(p)
	if errors.Is(err, plan.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		slog.Error("Plan generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	telemetry.ObservePlan(string(out.Goal), "service", out.Calories)
	slog.Info("Plan generated", "goal", out.Goal, "calories", out.Calories)
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("JSON encode error", "error", err)
	}
}
