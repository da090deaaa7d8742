package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/taskcal/project/internal/app/tasks"
	"github.com/taskcal/project/internal/platform/dbpool"
	"github.com/taskcal/project/internal/platform/env"
	"github.com/taskcal/project/internal/platform/httplog"
	"github.com/taskcal/project/internal/platform/metrics"
	"github.com/taskcal/project/services/frontend"
)

func main() {
	env.Load()
	configureLogging()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := env.String("SERVER_ADDR", env.DefaultServerAddr)
	pgURL := env.String("DATABASE_URL", env.DefaultDatabaseURL)
	uiOrigin := env.String("UI_ORIGIN", "*")
	shutdownTimeout := env.Duration("SHUTDOWN_TIMEOUT", 10*time.Second)

	pool, err := dbpool.New(runCtx, pgURL)
	if err != nil {
		log.WithError(err).Fatal("create database pool")
	}
	defer pool.Close()
	registerPoolMetrics(pool)

	repo := tasks.NewPostgresRepository(pool)
	// The server keeps listening even when schema bootstrap fails; requests
	// surface the database error until the database comes back.
	if err := waitForSchema(runCtx, repo, 30*time.Second); err != nil {
		log.WithError(err).Error("schema bootstrap failed, continuing without it")
	}

	service := tasks.NewService(repo)
	api := tasks.NewHandler(service, uiOrigin)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 1500*time.Millisecond)
		defer cancel()
		if err := pool.Ping(checkCtx); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.DefaultHandler())
	frontend.NewHandler(service).Register(mux)
	mux.Handle("/", api.Router())

	server := &http.Server{
		Addr:              addr,
		Handler:           httplog.Middleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.WithField("addr", addr).Info("task tracker listening")
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.WithError(err).Fatal("server failed")
	case <-runCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func configureLogging() {
	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(env.String("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func waitForSchema(ctx context.Context, repo *tasks.PostgresRepository, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		attemptCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		lastErr = repo.EnsureSchema(attemptCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		log.WithError(lastErr).Warn("waiting for tasks schema readiness")
		time.Sleep(500 * time.Millisecond)
	}
	return lastErr
}

func registerPoolMetrics(pool *pgxpool.Pool) {
	metrics.Default.MustRegister(
		metrics.NewGaugeFunc(metrics.Opts{
			Name: "db_pool_total_conns",
			Help: "Total connections held by the pool.",
		}, func() float64 {
			return float64(pool.Stat().TotalConns())
		}),
		metrics.NewGaugeFunc(metrics.Opts{
			Name: "db_pool_idle_conns",
			Help: "Idle connections in the pool.",
		}, func() float64 {
			return float64(pool.Stat().IdleConns())
		}),
	)
}
