// Package paymethods exposes saved payment methods and the bank table.
package paymethods

import (
	"github.com/gofiber/fiber/v2"
	"github.com/konvierte/konvierte/pkg/banks"
	paysvc "github.com/konvierte/konvierte/pkg/service/paymethods"
	"github.com/konvierte/konvierte/webapi"
)

// Routes registers the payment-method and bank endpoints.
func Routes(app *fiber.App, svc *paysvc.Service) {
	group := app.Group("/api/payment-methods")
	group.Get("/", List(svc))
	group.Post("/", Add(svc))
	group.Delete("/:id", Remove(svc))

	app.Get("/api/banks", Banks())
}

// MethodRequest is the payload for saving a payment card.
type MethodRequest struct {
	Alias       string `json:"alias" validate:"required,min=1,max=40"`
	Bank        string `json:"bank" validate:"required"`
	IDNumber    string `json:"id_number" validate:"required,min=5,max=15"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// List returns the saved payment methods.
func List(svc *paysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Payment methods fetched", svc.List())
	}
}

// Add saves a new payment method.
func Add(svc *paysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := webapi.BindAndValidate[MethodRequest](c)
		if err != nil {
			return nil
		}
		method, err := svc.Add(c.Context(), req.Alias, req.Bank, req.IDNumber, req.PhoneNumber)
		if err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
				"Failed to save payment method", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusCreated, "Payment method saved", method)
	}
}

// Remove deletes a payment method by id.
func Remove(svc *paysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Remove(c.Context(), c.Params("id")); err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
				"Failed to remove payment method", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Payment method removed", nil)
	}
}

// Banks returns the fixed Venezuelan bank table.
func Banks() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Banks fetched", banks.Venezuela)
	}
}
