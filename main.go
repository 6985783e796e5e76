package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func main() {
	cfg := LoadConfig(os.Args[1:])

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	adapter, err := AdapterFor(cfg.Driver)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn, err = adapter.BuildDSN()
		if err != nil {
			logger.Fatal("failed to build DSN", zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	gateway, err := OpenGateway(ctx, adapter, dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer gateway.Close()

	if cfg.MigrationsFile != "" {
		script, err := os.ReadFile(cfg.MigrationsFile)
		if err != nil {
			logger.Error("failed to read migrations file",
				zap.String("path", cfg.MigrationsFile), zap.Error(err))
		} else {
			results := RunMigrations(ctx, gateway, logger, string(script))
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			logger.Info("migrations finished",
				zap.Int("statements", len(results)), zap.Int("failed", failed))
		}
	}

	server := NewMCPServer(ctx, gateway, adapter, adapter.DatabaseName(dsn), logger)

	logger.Info("server started",
		zap.String("server", ServerName),
		zap.String("version", ServerVersion),
		zap.String("driver", cfg.Driver))

	if err := server.Run(os.Stdin); err != nil && err != context.Canceled {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server shutdown")
}
