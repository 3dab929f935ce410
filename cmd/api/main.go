package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imei-relay/imei_relay/internal/config"
	"github.com/imei-relay/imei_relay/internal/logging"
	"github.com/imei-relay/imei_relay/internal/metrics"
	"github.com/imei-relay/imei_relay/internal/provider"
	"github.com/imei-relay/imei_relay/internal/routes"
	"github.com/imei-relay/imei_relay/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, "gateway")

	if err := cfg.ValidateGateway(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	checker := provider.NewClient(provider.Config{
		URL:       cfg.Gateway.ProviderURL,
		Token:     cfg.Gateway.ProviderToken,
		ServiceID: cfg.Gateway.ProviderServiceID,
		Timeout:   cfg.Gateway.ProviderTimeout,
	})

	srv, err := server.New(cfg, routes.Deps{
		Checker:  checker,
		Metrics:  metrics.NewGateway(prometheus.DefaultRegisterer),
		Gatherer: prometheus.DefaultGatherer,
	}, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", "addr", cfg.Address(), "env", cfg.AppEnv)
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
