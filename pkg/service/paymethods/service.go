// Package paymethods manages the user's saved payment-method cards
// (pago móvil records) and their persistence.
package paymethods

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/konvierte/konvierte/infra/kvstore"
	"github.com/konvierte/konvierte/pkg/banks"
	"github.com/konvierte/konvierte/pkg/domain"
)

// KeyPaymentMethods is the persistence key for the saved cards.
const KeyPaymentMethods = "konvierte:payment_methods"

// Method is one saved payment card. Bank code, logo and color are denormalized
// from the bank table at creation time.
type Method struct {
	ID          string `json:"id"`
	Alias       string `json:"alias"`
	Bank        string `json:"bank"`
	IDNumber    string `json:"id_number"`
	PhoneNumber string `json:"phone_number"`
	BankCode    string `json:"bank_code,omitempty"`
	BankLogo    string `json:"bank_logo,omitempty"`
	BankColor   string `json:"bank_color,omitempty"`
}

// Service holds the saved methods and writes them through to the store.
type Service struct {
	store  kvstore.Store
	logger *slog.Logger

	mu      sync.RWMutex
	methods []Method
}

// New restores persisted methods; a corrupt blob falls back to empty.
func New(store kvstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger}
	s.methods = s.load(context.Background())
	return s
}

// List returns the saved methods in creation order.
func (s *Service) List() []Method {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.methods)
}

// Get returns one method by id.
func (s *Service) Get(id string) (Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.methods {
		if m.ID == id {
			return m, nil
		}
	}
	return Method{}, domain.ErrPaymentMethodNotFound
}

// Add validates and persists a new card. The phone must be a Venezuelan
// mobile number and the bank must exist in the bank table.
func (s *Service) Add(ctx context.Context, alias, bankName, idNumber, phone string) (Method, error) {
	if !ValidPhone(phone) {
		return Method{}, domain.ErrInvalidPhoneNumber
	}
	bank, ok := banks.ByName(strings.TrimSpace(bankName))
	if !ok {
		return Method{}, domain.ErrUnknownBank
	}

	method := Method{
		ID:          uuid.NewString(),
		Alias:       strings.TrimSpace(alias),
		Bank:        bank.Name,
		IDNumber:    strings.TrimSpace(idNumber),
		PhoneNumber: FormatLocal(phone),
		BankCode:    bank.Code,
		BankLogo:    bank.Logo,
		BankColor:   bank.Color,
	}

	s.mu.Lock()
	s.methods = append(s.methods, method)
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return Method{}, err
	}
	s.logger.Info("payment method saved", "id", method.ID, "bank", method.Bank)
	return method, nil
}

// Remove deletes a card by id.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	before := len(s.methods)
	s.methods = slices.DeleteFunc(s.methods, func(m Method) bool { return m.ID == id })
	removed := len(s.methods) != before
	s.mu.Unlock()

	if !removed {
		return domain.ErrPaymentMethodNotFound
	}
	return s.persist(ctx)
}

func (s *Service) load(ctx context.Context) []Method {
	raw, ok, err := s.store.Get(ctx, KeyPaymentMethods)
	if err != nil || !ok {
		return nil
	}
	var methods []Method
	if err := json.Unmarshal([]byte(raw), &methods); err != nil {
		s.logger.Warn("discarding corrupt payment methods blob", "error", err)
		return nil
	}
	return methods
}

func (s *Service) persist(ctx context.Context) error {
	data, err := json.Marshal(s.List())
	if err != nil {
		return err
	}
	return s.store.Set(ctx, KeyPaymentMethods, string(data))
}
