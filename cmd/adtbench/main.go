// cmd/adtbench/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/FairForge/adtkit/internal/bench"
	"github.com/FairForge/adtkit/internal/config"
	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/logging"
	"github.com/FairForge/adtkit/internal/metrics"
)

func main() {
	configPath := flag.String("config", config.GetEnvOrDefault("ADTKIT_CONFIG", ""), "path to a YAML config file")
	flag.Parse()

	// Bootstrap logger until the configured one exists
	boot, _ := zap.NewProduction()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot.Fatal("failed to load config", zap.Error(err))
	}
	config.LoadFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		boot.Fatal("invalid config", zap.Error(err))
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		boot.Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	collector := metrics.NewCollector()
	opts := &container.Options{
		Allocator: cfg.Containers.NewAllocator(collector),
		Logger:    logger,
		Metrics:   collector,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	if addr := cfg.Bench.MetricsAddr; addr != "" {
		srv = &http.Server{
			Addr:              addr,
			Handler:           newRouter(collector),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("starting comparative run",
		zap.Int("iterations", cfg.Bench.Iterations),
		zap.Int("payload_size", cfg.Bench.PayloadSize),
		zap.Int("initial_capacity", cfg.Containers.DefaultCapacity),
		zap.String("allocator", cfg.Containers.Allocator))

	runner := bench.NewRunner(cfg.Bench, opts, logger).WithCapacity(cfg.Containers.DefaultCapacity)
	results, err := runner.Run(ctx, bench.Targets())
	if err != nil {
		logger.Error("run aborted", zap.Error(err))
	}
	if err := bench.Report(os.Stdout, results); err != nil {
		logger.Error("failed to write report", zap.Error(err))
	}

	if srv != nil {
		if err == nil {
			logger.Info("run complete, metrics stay available until interrupted")
			<-ctx.Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", zap.Error(err))
		}
	}
}
