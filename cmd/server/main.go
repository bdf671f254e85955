package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signupform/internal/auth"
	"signupform/internal/config"
	"signupform/internal/httpapi"
	"signupform/internal/service"
	"signupform/internal/store/postgres"
)

func main() {
	os.Exit(run())
}

// run serves until a signal or a server error and returns the process exit
// code. Deferred cleanup runs before main exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}

	logger := newLogger(cfg)

	var (
		signupSvc = &service.SignupService{Hasher: auth.Hasher{}}
		dbPing    func(context.Context) error
	)

	if cfg.DBDSN != "" {
		ctx := context.Background()
		pgPool, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			logger.Error("db open failed", "err", err)
			return 1
		}
		defer pgPool.Close()

		if err := postgres.EnsureSchema(ctx, pgPool); err != nil {
			logger.Error("db schema failed", "err", err)
			return 1
		}

		signupSvc.Accounts = postgres.NewAccountsStore(pgPool)
		dbPing = pgPool.Ping
	} else {
		logger.Info("storage disabled: set APP_DB_DSN to enable signup")
	}

	handler := httpapi.NewRouter(httpapi.RouterOpts{
		Logger:           logger,
		IsProd:           cfg.IsProd(),
		DBPing:           dbPing,
		Signup:           signupSvc,
		StorageEnabled:   signupSvc.Accounts != nil,
		SignupRateLimit:  cfg.SignupRateLimit,
		SignupRateWindow: cfg.SignupRateWindow,
		TrustProxy:       cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "err", err)
			return 1
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			return 1
		}
	}
	return 0
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
