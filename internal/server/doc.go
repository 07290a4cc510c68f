// Package server provides an HTTP server for exposing Prometheus metrics.
//
// This package implements an HTTP server with multiple endpoints for
// serving Prometheus metrics, health checks, and a web UI. It provides
// graceful shutdown support and configurable timeouts.
//
// Available endpoints:
//   - /           : Web UI showing exporter status and information
//   - /metrics    : Prometheus metrics endpoint (each scrape drives a cost collection)
//   - /health     : Liveness probe (always returns 200)
//   - /ready      : Readiness probe (returns 200 once a collection has succeeded)
//
// The server is configured with sensible timeout defaults:
//   - Read timeout: 15 seconds
//   - Write timeout: 15 seconds
//   - Idle timeout: 60 seconds
//
// The main type is Server, which manages the HTTP server lifecycle and
// provides methods for starting and graceful shutdown.
//
// Example usage:
//
//	// Create server
//	srv := server.NewServer(cfg, costCollector, log)
//
//	// Start server in a goroutine
//	serverErrors := make(chan error, 1)
//	go func() {
//		serverErrors <- srv.Start()
//	}()
//
//	// Wait for shutdown signal
//	shutdown := make(chan os.Signal, 1)
//	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
//
//	select {
//	case err := <-serverErrors:
//		log.Error("Server error", "error", err)
//		os.Exit(1)
//	case <-shutdown:
//		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//		defer cancel()
//		if err := srv.Shutdown(ctx); err != nil {
//			log.Error("Error during shutdown", "error", err)
//		}
//	}
//
// The web UI shows the current exporter status (Ready/Not Ready), the
// time of the last successful collection, the service count of that
// collection, the configured project, the advertised scrape interval,
// and links to all available endpoints.
package server
