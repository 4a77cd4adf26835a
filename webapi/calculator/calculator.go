// Package calculator exposes the conversion calculator sessions over HTTP.
package calculator

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	calc "github.com/konvierte/konvierte/pkg/calculator"
	"github.com/konvierte/konvierte/pkg/service/calcsession"
	"github.com/konvierte/konvierte/pkg/service/paymethods"
	"github.com/konvierte/konvierte/pkg/service/share"
	"github.com/konvierte/konvierte/webapi"
)

// Routes registers the calculator session endpoints.
func Routes(app *fiber.App, sessions *calcsession.Service, methods *paymethods.Service) {
	group := app.Group("/api/calculator")

	group.Post("/", Create(sessions))
	group.Get("/:id", Get(sessions))
	group.Delete("/:id", Close(sessions))
	group.Post("/:id/keys", Press(sessions))
	group.Post("/:id/focus", Focus(sessions))
	group.Post("/:id/unfocus", Unfocus(sessions))
	group.Post("/:id/amount", SetAmount(sessions))
	group.Put("/:id/rate", SelectRate(sessions))
	group.Post("/:id/swap", Swap(sessions))
	group.Post("/:id/reset", Reset(sessions))
	group.Get("/:id/share", Share(sessions, methods))
}

// KeyRequest carries one keypad token: a digit, "," or "DELETE".
type KeyRequest struct {
	Key string `json:"key" validate:"required,max=6"`
}

// FocusRequest selects which side receives keystrokes.
type FocusRequest struct {
	Side string `json:"side" validate:"required,oneof=foreign local"`
}

// AmountRequest is a quick-amount shortcut.
type AmountRequest struct {
	Value float64 `json:"value" validate:"gte=0"`
	Side  string  `json:"side" validate:"required,oneof=foreign local"`
}

// RateRequest switches the session's active rate.
type RateRequest struct {
	RateID string `json:"rate_id" validate:"required"`
}

func sessionID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		webapi.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid session id", err.Error()) //nolint:errcheck
		return uuid.Nil, false
	}
	return id, true
}

func respond(c *fiber.Ctx, view calcsession.View, err error, message string) error {
	if err != nil {
		return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err), message, err.Error())
	}
	return webapi.SuccessResponseJSON(c, fiber.StatusOK, message, view)
}

// Create opens a session on the default rate.
func Create(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view := sessions.Create()
		return webapi.SuccessResponseJSON(c, fiber.StatusCreated, "Calculator session created", view)
	}
}

// Get returns the current session snapshot.
func Get(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		view, err := sessions.Get(id)
		return respond(c, view, err, "Calculator session fetched")
	}
}

// Close drops the session.
func Close(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		if err := sessions.Close(id); err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
				"Failed to close session", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Calculator session closed", nil)
	}
}

// Press applies one keypad token.
func Press(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		req, err := webapi.BindAndValidate[KeyRequest](c)
		if err != nil {
			return nil
		}
		view, err := sessions.Press(id, req.Key)
		return respond(c, view, err, "Key applied")
	}
}

// Focus begins editing one side.
func Focus(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		req, err := webapi.BindAndValidate[FocusRequest](c)
		if err != nil {
			return nil
		}
		view, err := sessions.Focus(id, calc.Side(req.Side))
		return respond(c, view, err, "Side focused")
	}
}

// Unfocus returns the session to idle.
func Unfocus(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		view, err := sessions.Unfocus(id)
		return respond(c, view, err, "Side unfocused")
	}
}

// SetAmount applies a quick-amount shortcut.
func SetAmount(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		req, err := webapi.BindAndValidate[AmountRequest](c)
		if err != nil {
			return nil
		}
		view, err := sessions.SetAmount(id, req.Value, calc.Side(req.Side))
		return respond(c, view, err, "Amount set")
	}
}

// SelectRate switches the active rate and re-derives the non-source side.
func SelectRate(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		req, err := webapi.BindAndValidate[RateRequest](c)
		if err != nil {
			return nil
		}
		view, err := sessions.SelectRate(id, req.RateID)
		return respond(c, view, err, "Rate selected")
	}
}

// Swap toggles the display layout.
func Swap(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		view, err := sessions.Swap(id)
		return respond(c, view, err, "Layout swapped")
	}
}

// Reset restores the canonical state.
func Reset(sessions *calcsession.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		view, err := sessions.Reset(id)
		return respond(c, view, err, "Calculator reset")
	}
}

// Share renders the session as shareable text, optionally with a saved
// payment method attached via ?method=<id>.
func Share(sessions *calcsession.Service, methods *paymethods.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := sessionID(c)
		if !ok {
			return nil
		}
		view, err := sessions.Get(id)
		if err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
				"Failed to build report", err.Error())
		}

		var method *paymethods.Method
		if methodID := c.Query("method"); methodID != "" {
			m, err := methods.Get(methodID)
			if err != nil {
				return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err),
					"Failed to build report", err.Error())
			}
			method = &m
		}

		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Report built", fiber.Map{
			"text": share.Report(view, method),
		})
	}
}
