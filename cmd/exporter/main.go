package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zgpcy/aws-cost-exporter/internal/aws"
	"github.com/zgpcy/aws-cost-exporter/internal/collector"
	"github.com/zgpcy/aws-cost-exporter/internal/config"
	"github.com/zgpcy/aws-cost-exporter/internal/logger"
	"github.com/zgpcy/aws-cost-exporter/internal/server"
	"github.com/zgpcy/aws-cost-exporter/internal/version"
)

const (
	// DefaultShutdownTimeout is the maximum time to wait for graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

var configPath = flag.String("config", "config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration first (need log level from config)
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger
	logger := logger.New(cfg.LogLevel)
	logger.Info("AWS Cost Exporter starting",
		"version", version.String(),
		"config_path", *configPath)

	logger.Info("Configuration loaded successfully",
		"project", cfg.Project,
		"region", cfg.Region,
		"cost_type", cfg.CostType,
		"port", cfg.Port,
		"scrape_interval_seconds", cfg.ScrapeIntervalSeconds(),
		"api_timeout_seconds", cfg.APITimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Assume the billing account role; a failure here means the exporter
	// could never produce data, so it refuses to start.
	logger.Info("Assuming billing account role", "role_arn", cfg.RoleArn)
	broker, err := aws.NewBroker(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize AWS credentials", "error", err)
		os.Exit(1)
	}
	if _, err := broker.Assume(ctx); err != nil {
		logger.Error("Failed to assume billing account role", "error", err)
		os.Exit(1)
	}
	logger.Info("Billing account role assumed successfully")

	// Create the Cost Explorer client and the collector it feeds
	costClient := aws.NewClient(broker, cfg, logger)

	logger.Info("Creating Prometheus collector")
	costCollector := collector.NewCostCollector(costClient, cfg, logger)

	// Register collector with Prometheus
	if err := prometheus.Register(costCollector); err != nil {
		logger.Error("Failed to register collector", "error", err)
		os.Exit(1)
	}
	logger.Info("Collector registered with Prometheus")

	// Register Go runtime metrics (memory, goroutines, GC stats)
	if err := prometheus.Register(prometheus.NewGoCollector()); err != nil {
		logger.Warn("Failed to register Go collector", "error", err)
	} else {
		logger.Info("Go runtime metrics registered")
	}

	// Register process metrics (CPU, memory, file descriptors)
	if err := prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{})); err != nil {
		logger.Warn("Failed to register process collector", "error", err)
	} else {
		logger.Info("Process metrics registered")
	}

	// Create and start HTTP server; collections are driven by /metrics
	// scrapes, so there is nothing to schedule here.
	logger.Info("Creating HTTP server", "port", cfg.Port)
	srv := server.NewServer(cfg, costCollector, logger)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server error", "error", err)
		os.Exit(1)

	case sig := <-shutdown:
		logger.Info("Received shutdown signal, starting graceful shutdown", "signal", sig.String())

		cancel()

		// Shutdown server with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during server shutdown", "error", err)
			// Force shutdown
			os.Exit(1)
		}

		logger.Info("Server stopped gracefully")
	}
}
