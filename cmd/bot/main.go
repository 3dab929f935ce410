package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/imei-relay/imei_relay/internal/bot"
	"github.com/imei-relay/imei_relay/internal/config"
	"github.com/imei-relay/imei_relay/internal/infra"
	"github.com/imei-relay/imei_relay/internal/logging"
	"github.com/imei-relay/imei_relay/internal/metrics"
	"github.com/imei-relay/imei_relay/internal/notification"
	"github.com/imei-relay/imei_relay/internal/routes"
	"github.com/imei-relay/imei_relay/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, "bot")

	if err := cfg.ValidateBot(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("bot exited cleanly")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	allow, err := loadAllowList(ctx, cfg.Bot, logger)
	if err != nil {
		return err
	}
	if allow.Len() == 0 {
		logger.Warn("allow-list is empty, every user will be denied")
	}

	if err := tgbotapi.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn)); err != nil {
		return fmt.Errorf("set telegram logger: %w", err)
	}
	api, err := tgbotapi.NewBotAPI(cfg.Bot.TelegramToken)
	if err != nil {
		return fmt.Errorf("connect telegram: %w", err)
	}
	logger.Info("authorized on telegram", "account", api.Self.UserName, "dry_run", cfg.Bot.DryRun)

	gateway := bot.NewGatewayClient(cfg.Bot.GatewayURL, cfg.Bot.AuthToken, cfg.Bot.GatewayTimeout)
	handler, err := bot.NewHandler(allow, gateway, logger, metrics.NewBot(prometheus.DefaultRegisterer))
	if err != nil {
		return err
	}

	var notifier notification.Notifier = notification.NewTelegramNotifier(api)
	if cfg.Bot.DryRun {
		notifier = notification.NewLoggerNotifier(logger)
	}
	dispatcher := bot.NewDispatcher(api, handler, notifier, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})

	if addr := cfg.MetricsAddress(); addr != "" {
		app := server.NewApp(cfg.AppName, logger)
		routes.RegisterMetricsRoute(app, prometheus.DefaultGatherer)

		g.Go(func() error {
			logger.Info("metrics listening", "addr", addr)
			return app.Listen(addr)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadAllowList reads the configured ids and, when REDIS_URL is set, the Redis
// set once. The connection is closed before polling starts.
func loadAllowList(ctx context.Context, cfg config.Bot, logger *slog.Logger) (*bot.AllowList, error) {
	if cfg.RedisURL == "" {
		return bot.NewAllowList(cfg.AllowedUserIDs...), nil
	}

	rdb, err := infra.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("close redis", "error", err)
		}
	}()

	return bot.LoadAllowList(ctx, rdb, cfg.AllowListKey, cfg.AllowedUserIDs)
}
