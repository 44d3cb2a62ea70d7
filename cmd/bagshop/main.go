package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bagshop/internal/cache"
	"bagshop/internal/config"
	"bagshop/internal/http/handlers"
	applog "bagshop/internal/log"
	"bagshop/internal/repos"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		applog.L().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			applog.L().Warn("open log file", slog.String("path", cfg.LogFile), slog.Any("error", err))
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	logger := applog.New(out, cfg.LogFormat, cfg.LogLevel)
	applog.SetDefault(logger)

	db, err := repos.OpenDB(ctx, cfg.DBDriver, cfg.DBDSN, cfg.DBMaxOpenConns)
	if err != nil {
		logger.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if cfg.SeedDemo {
		if err := repos.SeedDemo(ctx, db); err != nil {
			logger.Error("seed demo data", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Listing cache is optional; without Redis every read goes to the database.
	var listings *cache.Cache
	if cfg.RedisAddr != "" {
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		} else {
			defer func() {
				if err := client.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
			listings = cache.NewCache(client, cfg.CacheTTL, logger)
		}
	}

	deps := handlers.NewDeps(db, cfg, listings)
	app := handlers.NewApp(cfg, deps)

	go func() {
		logger.Info("http server starting", slog.String("addr", cfg.Addr()), slog.String("db", cfg.DBDriver))
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
