package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/mariusrugan/credit-card-tx-api/internal/config"
	"github.com/mariusrugan/credit-card-tx-api/internal/hub"
	"github.com/mariusrugan/credit-card-tx-api/internal/logging"
	"github.com/mariusrugan/credit-card-tx-api/internal/server"
	"github.com/mariusrugan/credit-card-tx-api/internal/stream"
)

func main() {
	// Health check mode: used as a container HEALTHCHECK command.
	if slices.Contains(os.Args[1:], "--health") {
		runHealthCheck()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	clock := clockwork.NewRealClock()
	h := hub.New(cfg.BroadcastBufferSize)

	// The cancellation signal is observed by the producers only. Open
	// sessions keep running until their own socket closes.
	producerCtx, cancelProducers := context.WithCancel(context.Background())
	producers, producerCtx := errgroup.WithContext(producerCtx)
	producers.Go(func() error {
		return stream.NewHeartbeatProducer(h, clock).Run(producerCtx)
	})
	producers.Go(func() error {
		return stream.NewTransactionProducer(h, stream.NewMockSource(clock)).Run(producerCtx)
	})

	srv := server.New(cfg, h, clock)

	done := runGracefulShutdown(srv, cancelProducers, producers)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.WithError(err).Error("Server error")
		os.Exit(1)
	}

	<-done
	slog.Info("Server shutdown complete")
}

func runGracefulShutdown(srv *server.Server, cancelProducers context.CancelFunc, producers *errgroup.Group) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		cancelProducers()
		if err := producers.Wait(); err != nil {
			logging.WithError(err).Error("Producer shutdown error")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.WithError(err).Error("Server shutdown error")
		}

		close(done)
	}()

	return done
}

// runHealthCheck probes the local /health endpoint and exits 0 on success.
func runHealthCheck() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	url := fmt.Sprintf("http://localhost:%s/health", port)

	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Health check: FAILED - %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Health check: FAILED - status %s\n", resp.Status)
		os.Exit(1)
	}

	fmt.Println("Health check: OK")
}
