package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const baseline = "bcv_usd"

func TestReconcileAppendsNewIDs(t *testing.T) {
	s := New(baseline)
	changed := s.Reconcile([]string{"bcv_usd", "bcv_eur", "binance_usd"})

	assert.True(t, changed)
	assert.Equal(t, []string{"bcv_usd", "bcv_eur", "binance_usd"}, s.Order())
}

func TestReconcileDropsRemovedKeepsSurvivorOrder(t *testing.T) {
	s := New(baseline)
	s.Restore([]string{"custom_1", "binance_usd", "bcv_usd", "bcv_eur"}, baseline)

	s.Reconcile([]string{"bcv_usd", "bcv_eur", "binance_usd", "custom_2"})

	assert.Equal(t, []string{"binance_usd", "bcv_usd", "bcv_eur", "custom_2"}, s.Order())
}

func TestReconcileIsIdempotent(t *testing.T) {
	s := New(baseline)
	ids := []string{"bcv_usd", "bcv_eur", "binance_usd", "custom_1"}

	assert.True(t, s.Reconcile(ids))
	first := s.Order()
	assert.False(t, s.Reconcile(ids))
	assert.Equal(t, first, s.Order())
}

func TestReconcileRevertsDanglingDefault(t *testing.T) {
	s := New(baseline)
	s.Restore([]string{"bcv_usd", "custom_7"}, "custom_7")

	s.Reconcile([]string{"bcv_usd", "bcv_eur", "binance_usd"})

	assert.Equal(t, baseline, s.DefaultID())
}

func TestSetOrderReplacesWholesale(t *testing.T) {
	s := New(baseline)
	s.Reconcile([]string{"bcv_usd", "bcv_eur", "binance_usd"})

	s.SetOrder([]string{"binance_usd", "bcv_usd", "bcv_eur"})

	assert.Equal(t, []string{"binance_usd", "bcv_usd", "bcv_eur"}, s.Order())
}

func TestToggleDefault(t *testing.T) {
	s := New(baseline)
	s.Reconcile([]string{"bcv_usd", "bcv_eur"})

	s.ToggleDefault("bcv_eur")
	assert.Equal(t, "bcv_eur", s.DefaultID())

	// Toggling the current default reverts to baseline.
	s.ToggleDefault("bcv_eur")
	assert.Equal(t, baseline, s.DefaultID())
}

func TestRemoveCustomRevertsDefault(t *testing.T) {
	s := New(baseline)
	s.Reconcile([]string{"bcv_usd", "bcv_eur", "binance_usd", "custom_7"})
	s.ToggleDefault("custom_7")

	s.RemoveCustom("custom_7")

	assert.Equal(t, baseline, s.DefaultID())
	assert.NotContains(t, s.Order(), "custom_7")
}

func TestRemoveCustomKeepsUnrelatedDefault(t *testing.T) {
	s := New(baseline)
	s.Reconcile([]string{"bcv_usd", "bcv_eur", "custom_1"})
	s.ToggleDefault("bcv_eur")

	s.RemoveCustom("custom_1")

	assert.Equal(t, "bcv_eur", s.DefaultID())
}

func TestRestoreEmptyDefaultFallsBack(t *testing.T) {
	s := New(baseline)
	s.Restore(nil, "")

	assert.Equal(t, baseline, s.DefaultID())
}
