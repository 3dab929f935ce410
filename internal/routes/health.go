package routes

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterHealthRoutes adds a liveness endpoint that also reports whether the
// provider settings are present. It never calls the provider.
func RegisterHealthRoutes(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		providerStatus := "ok"
		switch {
		case d.Cfg.Gateway.ProviderURL == "":
			providerStatus = "url not configured"
		case d.Cfg.Gateway.ProviderToken == "":
			providerStatus = "token not configured"
		}

		status := http.StatusOK
		if providerStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    fiber.Map{"provider": providerStatus},
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
