package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imei-relay/imei_relay/internal/config"
	"github.com/imei-relay/imei_relay/internal/lookup"
	"github.com/imei-relay/imei_relay/internal/metrics"
	"github.com/imei-relay/imei_relay/internal/middleware"
	"github.com/imei-relay/imei_relay/internal/provider"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	Checker  provider.Checker
	Logger   *slog.Logger
	Metrics  *metrics.Gateway
	Gatherer prometheus.Gatherer
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Checker == nil {
		return fmt.Errorf("provider checker is required")
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)
	if d.Gatherer != nil {
		RegisterMetricsRoute(app, d.Gatherer)
	}

	lookupSvc, err := lookup.NewService(d.Checker, d.Cfg.Gateway.AuthToken, d.Logger, d.Metrics)
	if err != nil {
		return err
	}
	lookupHandler := lookup.NewHandler(lookupSvc)

	api := app.Group("/api")
	api.Post("/check-imei", lookupHandler.CheckIMEI)

	v1 := api.Group("/v1")
	v1.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.GetRequestID(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	return nil
}
