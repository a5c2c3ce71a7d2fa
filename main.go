package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"LinearPanel/internal/archive"
	"LinearPanel/internal/calc/batch"
	"LinearPanel/internal/calc/density"
	"LinearPanel/internal/calc/gradient"
	"LinearPanel/internal/calc/mix"
	"LinearPanel/internal/calc/plan"
	"LinearPanel/internal/calc/report"
	"LinearPanel/internal/config"
	"LinearPanel/internal/logger"
	"LinearPanel/internal/ratelimit"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(r *mux.Router, cfg config.Config, lg *slog.Logger) {
	limiter := ratelimit.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	densityH := &density.Handler{}
	mixH := &mix.Handler{}
	batchH := &batch.Handler{}
	gradientH := &gradient.Handler{}
	planH := &plan.Handler{}
	reportH := &report.Handler{Version: cfg.App.Version}
	archiveH := &archive.Handler{Version: cfg.App.Version, Log: lg}

	api.HandleFunc("/tools/density/calc", densityH.Calc).Methods("POST")
	api.HandleFunc("/tools/mix/calc", mixH.Calc).Methods("POST")
	api.HandleFunc("/tools/mix/actual", mixH.Actual).Methods("POST")
	api.HandleFunc("/tools/mix/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/tools/gradient/calc", gradientH.Calc).Methods("POST")
	api.HandleFunc("/tools/plan/calc", planH.Calc).Methods("POST")
	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	api.HandleFunc("/tools/archive/export", archiveH.Export).Methods("POST")
	api.HandleFunc("/tools/archive/import", archiveH.Import).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.New(cfg.App.Env)

	r := mux.NewRouter()
	HandleList(r, cfg, lg)
	handler := CORS(r)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		lg.Info("starting server", "addr", cfg.HTTP.Addr, "version", cfg.App.Version)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error("server error", "err", err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	lg.Info("server stopped")

	wg.Wait()
}
