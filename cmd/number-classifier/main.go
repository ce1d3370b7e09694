// main is the entry point of the Number Classifier API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the SQLite classification history
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/number-classifier --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/number-classifier
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/number-classifier/internal/config"
	"github.com/aanand-mishra/number-classifier/internal/funfact"
	"github.com/aanand-mishra/number-classifier/internal/http/handlers/history"
	"github.com/aanand-mishra/number-classifier/internal/http/handlers/number"
	"github.com/aanand-mishra/number-classifier/internal/http/middleware"
	"github.com/aanand-mishra/number-classifier/internal/metrics"
	"github.com/aanand-mishra/number-classifier/internal/storage"
	"github.com/aanand-mishra/number-classifier/internal/storage/sqlite"
	"github.com/aanand-mishra/number-classifier/internal/utils/response"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Installed as the default so packages can call slog.Info directly.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting number-classifier",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Classification does not need the history log, so a database that
	// cannot be opened only disables the history routes.
	var store storage.Storage
	if db, err := sqlite.New(cfg.StoragePath); err != nil {
		log.Error("failed to initialise storage, history disabled",
			slog.String("path", cfg.StoragePath),
			slog.String("error", err.Error()))
	} else {
		defer db.Close()
		store = db
		log.Info("storage initialised",
			slog.String("path", cfg.StoragePath))
	}

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	m := metrics.New(prometheus.DefaultRegisterer)
	fetcher := funfact.New(cfg.FunFact.BaseURL, cfg.FunFact.Timeout, funfact.WithMetrics(m))

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: newRouter(cfg, fetcher, store, m),

		// WriteTimeout leaves room for the fun fact timeout.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.FunFact.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// ── 5. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// newRouter builds the route table, wrapped in CORS.
//
// Route table:
//
//	GET /api/classify-number?number=N   → classify a number
//	GET /api/classifications?limit=N    → recent classifications (if store != nil)
//	GET /api/classifications/{id}       → one classification (if store != nil)
//	GET /health                         → liveness
//	GET /metrics                        → Prometheus (if enabled)
func newRouter(cfg *config.Config, fetcher funfact.Fetcher, store storage.Storage, m *metrics.Metrics) http.Handler {
	router := http.NewServeMux()

	route := func(pattern, path string, h http.Handler) {
		router.Handle(pattern, middleware.Instrument(m, path, h))
	}

	route("GET /api/classify-number", "/api/classify-number", number.Classify(fetcher, store, m))
	if store != nil {
		route("GET /api/classifications", "/api/classifications", history.GetList(store))
		route("GET /api/classifications/{id}", "/api/classifications/{id}", history.GetByID(store))
	}

	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	})

	if cfg.Metrics.Enabled {
		router.Handle("GET /metrics", promhttp.Handler())
	}

	return middleware.CORS(router)
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
