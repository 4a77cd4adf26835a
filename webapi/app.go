// Package webapi wires the Fiber application: middleware, health check and
// the route groups for rates, calculator sessions and payment methods.
package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/konvierte/konvierte/config"
	"github.com/konvierte/konvierte/pkg/service/calcsession"
	paysvc "github.com/konvierte/konvierte/pkg/service/paymethods"
	ratesvc "github.com/konvierte/konvierte/pkg/service/rates"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Config     *config.App
	Logger     *slog.Logger
	Rates      *ratesvc.Service
	Sessions   *calcsession.Service
	PayMethods *paysvc.Service
}

// NewApp builds the Fiber app with middleware and a health endpoint.
// Route registration lives in the subpackages (webapi/rates etc.) and is
// invoked by the caller to avoid an import cycle with this package.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "konvierte",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		},
	})

	app.Use(recover.New())
	if deps.Config != nil && deps.Config.RateLimit != nil {
		app.Use(limiter.New(limiter.Config{
			Max:        deps.Config.RateLimit.MaxRequests,
			Expiration: deps.Config.RateLimit.Window,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", fiber.Map{
			"last_update": deps.Rates.LastFetchedAt(),
		})
	})

	return app
}
