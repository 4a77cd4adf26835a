package paymethods

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/konvierte/konvierte/infra/kvstore"
	"github.com/konvierte/konvierte/pkg/banks"
	"github.com/konvierte/konvierte/pkg/catalog"
	"github.com/konvierte/konvierte/pkg/eventbus"
	"github.com/konvierte/konvierte/pkg/formula"
	"github.com/konvierte/konvierte/pkg/provider/ratesource"
	"github.com/konvierte/konvierte/pkg/service/calcsession"
	paysvc "github.com/konvierte/konvierte/pkg/service/paymethods"
	ratesvc "github.com/konvierte/konvierte/pkg/service/rates"
	"github.com/konvierte/konvierte/webapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *paysvc.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := ratesource.NewFake(map[string]float64{"bcv_usd": 40})
	bus := eventbus.NewSimpleEventBus()
	rates := ratesvc.New(source, kvstore.NewMemory(), catalog.NewResolver(formula.NewExprEvaluator(), logger), bus, logger)
	sessions := calcsession.New(rates, bus, logger)
	svc := paysvc.New(kvstore.NewMemory(), logger)

	app := webapi.NewApp(webapi.Deps{
		Logger:     logger,
		Rates:      rates,
		Sessions:   sessions,
		PayMethods: svc,
	})
	Routes(app, svc)
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp, payload
}

func TestBanksEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/banks", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["data"], len(banks.Venezuela))
}

func TestAddPaymentMethod(t *testing.T) {
	app, svc := newTestApp(t)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/payment-methods/",
		`{"alias":"Personal","bank":"Banesco","id_number":"V-12345678","phone_number":"04141234567"}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "0134", data["bank_code"])
	assert.Equal(t, "0414-1234567", data["phone_number"])
	assert.Len(t, svc.List(), 1)
}

func TestAddPaymentMethodInvalidPhone(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/payment-methods/",
		`{"alias":"Personal","bank":"Banesco","id_number":"V-12345678","phone_number":"02121234567"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAddPaymentMethodUnknownBank(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/payment-methods/",
		`{"alias":"Personal","bank":"Banco Imaginario","id_number":"V-12345678","phone_number":"04141234567"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAddPaymentMethodValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/payment-methods/", `{"alias":"Personal"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAndRemovePaymentMethods(t *testing.T) {
	app, svc := newTestApp(t)
	method, err := svc.Add(context.Background(), "Personal", "Banco de Venezuela", "V-12345678", "04241234567")
	require.NoError(t, err)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/payment-methods/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["data"], 1)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/payment-methods/"+method.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, svc.List())

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/payment-methods/"+method.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
