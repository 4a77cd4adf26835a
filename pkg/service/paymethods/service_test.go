package paymethods

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/konvierte/konvierte/infra/kvstore"
	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store kvstore.Store) *Service {
	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAddDenormalizesBankAndFormatsPhone(t *testing.T) {
	s := newTestService(kvstore.NewMemory())

	method, err := s.Add(context.Background(), "Personal", "Banesco", "V-12345678", "+584141234567")
	require.NoError(t, err)

	assert.NotEmpty(t, method.ID)
	assert.Equal(t, "Personal", method.Alias)
	assert.Equal(t, "Banesco", method.Bank)
	assert.Equal(t, "0134", method.BankCode)
	assert.NotEmpty(t, method.BankLogo)
	assert.Equal(t, "#2C8B3E", method.BankColor)
	assert.Equal(t, "0414-1234567", method.PhoneNumber)
	assert.Equal(t, "V-12345678", method.IDNumber)
}

func TestAddRejectsInvalidPhone(t *testing.T) {
	s := newTestService(kvstore.NewMemory())

	_, err := s.Add(context.Background(), "Personal", "Banesco", "V-12345678", "0212-1234567")
	assert.ErrorIs(t, err, domain.ErrInvalidPhoneNumber)
}

func TestAddRejectsUnknownBank(t *testing.T) {
	s := newTestService(kvstore.NewMemory())

	_, err := s.Add(context.Background(), "Personal", "Banco Inexistente", "V-12345678", "04141234567")
	assert.ErrorIs(t, err, domain.ErrUnknownBank)
}

func TestGetAndRemove(t *testing.T) {
	s := newTestService(kvstore.NewMemory())
	method, err := s.Add(context.Background(), "Personal", "Banco de Venezuela", "V-12345678", "04241234567")
	require.NoError(t, err)

	got, err := s.Get(method.ID)
	require.NoError(t, err)
	assert.Equal(t, method, got)

	require.NoError(t, s.Remove(context.Background(), method.ID))
	_, err = s.Get(method.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentMethodNotFound)
	assert.ErrorIs(t, s.Remove(context.Background(), method.ID), domain.ErrPaymentMethodNotFound)
}

func TestMethodsSurviveRestart(t *testing.T) {
	store := kvstore.NewMemory()
	s := newTestService(store)
	method, err := s.Add(context.Background(), "Personal", "Banco Mercantil", "V-12345678", "04161234567")
	require.NoError(t, err)

	restarted := newTestService(store)

	require.Len(t, restarted.List(), 1)
	assert.Equal(t, method, restarted.List()[0])
}

func TestCorruptBlobFallsBackToEmpty(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(context.Background(), KeyPaymentMethods, "[broken"))

	s := newTestService(store)

	assert.Empty(t, s.List())
}
