package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wichananm65/zoo-backend/internal/auth"
	"github.com/wichananm65/zoo-backend/internal/cache"
	"github.com/wichananm65/zoo-backend/internal/config"
	"github.com/wichananm65/zoo-backend/internal/customer"
	"github.com/wichananm65/zoo-backend/internal/database"
	"github.com/wichananm65/zoo-backend/internal/home"
	"github.com/wichananm65/zoo-backend/internal/logger"
	"github.com/wichananm65/zoo-backend/internal/metrics"
	"github.com/wichananm65/zoo-backend/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.App.LogLevel, cfg.IsDev())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			return err
		}
	}

	m := metrics.New()

	opts := []customer.Option{customer.WithBcryptCost(cfg.Auth.BcryptCost)}
	if cfg.Redis.Enabled() {
		rdb, err := cache.Connect(ctx, cfg.Redis, log)
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)
		opts = append(opts, customer.WithCache(cache.NewCustomerCache(rdb, cfg.Redis.TTL)))
		log.Info("customer list cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	customerService := customer.NewService(customer.NewSQLRepository(db, cfg.DB.QueryTimeout), log, opts...)
	customerHandler := customer.NewHandler(
		customerService,
		auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		log,
		customer.WithSignupRecorder(m),
	)
	homeHandler := home.NewHandler(home.NewService(home.NewInMemoryRepository(home.DefaultContent())), log)

	app := server.New(server.Deps{
		Log:       log,
		HTTP:      cfg.HTTP,
		JWTSecret: cfg.Auth.JWTSecret,
		Metrics:   m,
		DB:        db,
		Customers: customerHandler,
		Home:      homeHandler,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.HTTP.Addr))
		errCh <- app.Listen(cfg.HTTP.Addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	return nil
}

func closeDB(db *sqlx.DB, log *zap.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("close database", zap.Error(err))
	}
}

func closeRedis(rdb *redis.Client, log *zap.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn("close redis", zap.Error(err))
	}
}
