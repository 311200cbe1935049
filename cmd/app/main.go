package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/config"
	"bookstore/events"
	"bookstore/handlers"
	"bookstore/logging"
	"bookstore/ratelimit"
	"bookstore/repository"
	"bookstore/service"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.Init(cfg.LogLevel)

	defaultCredits, err := decimal.NewFromString(cfg.DefaultCredits)
	if err != nil || defaultCredits.IsNegative() {
		return fmt.Errorf("invalid default credits %q", cfg.DefaultCredits)
	}

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer func() { _ = db.Close() }()

	repoImpl := repository.NewPostgresRepository(db)

	opts := service.Options{
		DefaultCredits: defaultCredits,
		PasswordScheme: cfg.PasswordScheme,
	}
	var limiter handlers.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer func() { _ = rdb.Close() }()

		publisher, err := events.NewRedisPublisher(rdb, cfg.EventsStream)
		if err != nil {
			return fmt.Errorf("events publisher init: %w", err)
		}
		opts.Publisher = publisher

		if cfg.LoginRateLimitPerMinute > 0 {
			l, err := ratelimit.NewFixedWindowLimiter(rdb, "bookstore:ratelimit", cfg.LoginRateLimitPerMinute, time.Minute)
			if err != nil {
				return fmt.Errorf("rate limiter init: %w", err)
			}
			limiter = l
		}
	}

	svc := service.NewService(repoImpl, cfg.JWTSecret, opts)
	h := handlers.NewHandler(svc, cfg.JWTSecret, cfg.DBTimeout, limiter)

	srv := http.Server{
		Handler:      handlers.NewRouter(h),
		Addr:         ":" + cfg.ServerPort,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	logger.Info("server started", "port", cfg.ServerPort)
	if err := serve(ctx, &srv, ln, logger); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// serve runs srv on ln until ctx is done, then shuts it down and returns
// only after in-flight requests have finished.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	<-shutdownDone
	return nil
}
