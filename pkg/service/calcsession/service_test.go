package calcsession

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/konvierte/konvierte/infra/kvstore"
	"github.com/konvierte/konvierte/pkg/calculator"
	"github.com/konvierte/konvierte/pkg/catalog"
	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/konvierte/konvierte/pkg/eventbus"
	"github.com/konvierte/konvierte/pkg/formula"
	"github.com/konvierte/konvierte/pkg/provider/ratesource"
	ratesvc "github.com/konvierte/konvierte/pkg/service/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStack(t *testing.T) (*Service, *ratesvc.Service, *ratesource.Fake) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := ratesource.NewFake(map[string]float64{
		"bcv_usd":     40,
		"bcv_eur":     43.5,
		"binance_usd": 42,
	})
	bus := eventbus.NewSimpleEventBus()
	rates := ratesvc.New(source, kvstore.NewMemory(), catalog.NewResolver(formula.NewExprEvaluator(), logger), bus, logger)
	sessions := New(rates, bus, logger)
	require.NoError(t, rates.Refresh(context.Background()))
	return sessions, rates, source
}

func TestCreateOpensOnDefaultRate(t *testing.T) {
	sessions, _, _ := newStack(t)

	view := sessions.Create()

	assert.Equal(t, "bcv_usd", view.ActiveRateID)
	assert.Equal(t, "1", view.ForeignAmount)
	assert.Equal(t, "40,00", view.LocalAmount)
	assert.Equal(t, calculator.StateIdle, view.State)
}

func TestKeypadFlow(t *testing.T) {
	sessions, _, _ := newStack(t)
	id := sessions.Create().ID

	_, err := sessions.Focus(id, calculator.SideForeign)
	require.NoError(t, err)
	view, err := sessions.Press(id, "5")
	require.NoError(t, err)

	assert.Equal(t, "5", view.ForeignAmount)
	assert.Equal(t, "200,00", view.LocalAmount)
	assert.Equal(t, calculator.StateEditingForeign, view.State)

	view, err = sessions.Unfocus(id)
	require.NoError(t, err)
	assert.Equal(t, calculator.StateIdle, view.State)
}

func TestSelectRate(t *testing.T) {
	sessions, _, _ := newStack(t)
	id := sessions.Create().ID
	_, err := sessions.Focus(id, calculator.SideForeign)
	require.NoError(t, err)
	_, err = sessions.Press(id, "5")
	require.NoError(t, err)

	view, err := sessions.SelectRate(id, "bcv_eur")
	require.NoError(t, err)

	assert.Equal(t, "bcv_eur", view.ActiveRateID)
	assert.Equal(t, "5", view.ForeignAmount)
	assert.Equal(t, "217,50", view.LocalAmount)
}

func TestSelectUnknownRate(t *testing.T) {
	sessions, _, _ := newStack(t)
	id := sessions.Create().ID

	_, err := sessions.SelectRate(id, "custom_nope")
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestUnknownSession(t *testing.T) {
	sessions, _, _ := newStack(t)

	_, err := sessions.Get(uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = sessions.Press(uuid.New(), "5")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestClose(t *testing.T) {
	sessions, _, _ := newStack(t)
	id := sessions.Create().ID

	require.NoError(t, sessions.Close(id))
	assert.ErrorIs(t, sessions.Close(id), domain.ErrSessionNotFound)
	_, err := sessions.Get(id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// A catalog refresh re-derives open sessions at the new price while keeping
// the side the user typed.
func TestRefreshRepricesOpenSessions(t *testing.T) {
	sessions, rates, source := newStack(t)
	id := sessions.Create().ID
	_, err := sessions.Focus(id, calculator.SideForeign)
	require.NoError(t, err)
	_, err = sessions.Press(id, "5")
	require.NoError(t, err)

	source.SetPrice("bcv_usd", 36.5)
	require.NoError(t, rates.Refresh(context.Background()))

	view, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "5", view.ForeignAmount)
	assert.Equal(t, "182,50", view.LocalAmount)
}

// Removing the custom rate a session is on moves the session to the
// baseline rate.
func TestRemovedCustomRateRedirectsToBaseline(t *testing.T) {
	sessions, rates, _ := newStack(t)
	custom, err := rates.AddCustomRate(context.Background(), "Doble", "bcv_usd * 2")
	require.NoError(t, err)

	id := sessions.Create().ID
	_, err = sessions.SelectRate(id, custom.ID)
	require.NoError(t, err)
	_, err = sessions.Focus(id, calculator.SideForeign)
	require.NoError(t, err)
	_, err = sessions.Press(id, "2")
	require.NoError(t, err)

	require.NoError(t, rates.RemoveCustomRate(context.Background(), custom.ID))

	view, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.BaselineRateID, view.ActiveRateID)
	assert.Equal(t, "2", view.ForeignAmount)
	assert.Equal(t, "80,00", view.LocalAmount)
}
