// Package rates exposes the rate catalog over HTTP.
package rates

import (
	"github.com/gofiber/fiber/v2"
	ratesvc "github.com/konvierte/konvierte/pkg/service/rates"
	"github.com/konvierte/konvierte/webapi"
)

// Routes registers the rate catalog endpoints.
func Routes(app *fiber.App, svc *ratesvc.Service) {
	group := app.Group("/api/rates")

	group.Get("/", List(svc))
	group.Post("/refresh", Refresh(svc))
	group.Post("/custom", AddCustom(svc))
	group.Delete("/custom/:id", RemoveCustom(svc))
	group.Put("/order", UpdateOrder(svc))
	group.Put("/:id/default", ToggleDefault(svc))
}

// CustomRateRequest is the payload for saving a derived rate.
type CustomRateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=40"`
	Formula string `json:"formula" validate:"required,min=1,max=120"`
}

// OrderRequest is the payload for a drag-reorder.
type OrderRequest struct {
	Order []string `json:"order" validate:"required,min=1,dive,required"`
}

// List returns the resolved catalog, display order and default rate.
func List(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Rates fetched successfully", fiber.Map{
			"rates":           svc.Resolved(),
			"order":           svc.Order(),
			"default_rate_id": svc.DefaultRateID(),
			"custom_rates":    svc.CustomRates(),
			"last_update":     svc.LastFetchedAt(),
		})
	}
}

// Refresh triggers an upstream fetch. On failure the catalog keeps its
// last-known prices and the client gets a 502 to show its notification.
func Refresh(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Refresh(c.Context()); err != nil {
			return webapi.ErrorResponseJSON(c, fiber.StatusBadGateway,
				"Rate refresh failed, last-known rates still apply", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Rates refreshed", fiber.Map{
			"rates":       svc.Resolved(),
			"last_update": svc.LastFetchedAt(),
		})
	}
}

// AddCustom saves a new formula-derived rate.
func AddCustom(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := webapi.BindAndValidate[CustomRateRequest](c)
		if err != nil {
			return nil
		}
		rate, err := svc.AddCustomRate(c.Context(), req.Name, req.Formula)
		if err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
				"Failed to add custom rate", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusCreated, "Custom rate saved", rate)
	}
}

// RemoveCustom deletes a derived rate; sessions on it fall back to baseline.
func RemoveCustom(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.RemoveCustomRate(c.Context(), id); err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
				"Failed to remove custom rate", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Custom rate removed", fiber.Map{
			"order":           svc.Order(),
			"default_rate_id": svc.DefaultRateID(),
		})
	}
}

// UpdateOrder replaces the display order wholesale.
func UpdateOrder(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := webapi.BindAndValidate[OrderRequest](c)
		if err != nil {
			return nil
		}
		if err := svc.UpdateOrder(c.Context(), req.Order); err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
				"Failed to update order", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Order updated", svc.Order())
	}
}

// ToggleDefault marks a rate as favorite, or reverts to baseline.
func ToggleDefault(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.ToggleDefault(c.Context(), id); err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
				"Failed to toggle default rate", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Default rate updated", fiber.Map{
			"default_rate_id": svc.DefaultRateID(),
		})
	}
}
